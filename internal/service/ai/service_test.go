package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"folioassist/internal/config"
	"folioassist/internal/model/assistant"
	"folioassist/internal/model/chat"
)

// stubModel satisfies model.BaseChatModel and records what the chain
// hands to the provider.
type stubModel struct {
	reply string
	err   error
	got   []*schema.Message
}

func (m *stubModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.got = in
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *stubModel) Stream(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported by stub")
}

func testProfile() *assistant.Profile {
	return &assistant.Profile{
		AssistantName:    "Folio",
		OwnerName:        "Dana",
		ContactEmail:     "dana@example.dev",
		BookingLink:      "https://cal.example.dev/dana",
		AutoShareContact: true,
		Projects: []assistant.Project{
			{Title: "Shoply", Description: "an e-commerce storefront", Tech: []string{"Go", "Postgres"}},
		},
	}
}

func newStubService(t *testing.T, m *stubModel) *Service {
	t.Helper()
	svc, err := newService(context.Background(), m, testProfile(), config.AIConfig{})
	if err != nil {
		t.Fatalf("newService err: %v", err)
	}
	return svc
}

func TestGenerateHappyPath(t *testing.T) {
	stub := &stubModel{reply: "Shoply is an e-commerce storefront built with Go."}
	svc := newStubService(t, stub)

	reply := svc.Generate(context.Background(), nil, "tell me about Shoply")
	if reply.Text != stub.reply {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
	if reply.ContactShared {
		t.Fatal("unexpected contactShared")
	}
}

func TestGenerateBoundsHistoryWindow(t *testing.T) {
	stub := &stubModel{reply: "ok"}
	svc := newStubService(t, stub)

	history := make([]chat.Message, 0, 30)
	for i := 0; i < 30; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		history = append(history, chat.Message{Role: role, Content: "turn"})
	}

	svc.Generate(context.Background(), history, "latest question")

	// system + at most 10 history messages + the new user message.
	if len(stub.got) > 12 {
		t.Fatalf("provider saw %d messages, want at most 12", len(stub.got))
	}
	if stub.got[0].Role != schema.System {
		t.Fatalf("first message must be the system prompt, got %s", stub.got[0].Role)
	}
	last := stub.got[len(stub.got)-1]
	if last.Role != schema.User || last.Content != "latest question" {
		t.Fatalf("last message must be the new user turn, got %s %q", last.Role, last.Content)
	}
}

func TestGenerateTruncatesUserMessage(t *testing.T) {
	stub := &stubModel{reply: "ok"}
	svc := newStubService(t, stub)

	svc.Generate(context.Background(), nil, strings.Repeat("x", 5000))

	last := stub.got[len(stub.got)-1]
	if len(last.Content) != maxUserMessageChars {
		t.Fatalf("expected message truncated to %d chars, got %d", maxUserMessageChars, len(last.Content))
	}
}

func TestGenerateTruncationKeepsRunesIntact(t *testing.T) {
	stub := &stubModel{reply: "ok"}
	svc := newStubService(t, stub)

	// Three-byte runes: the 1000-byte limit lands mid-rune, so a naive
	// byte cut would emit invalid UTF-8.
	svc.Generate(context.Background(), nil, strings.Repeat("日", 400))

	last := stub.got[len(stub.got)-1]
	if len(last.Content) > maxUserMessageChars {
		t.Fatalf("message exceeds limit: %d bytes", len(last.Content))
	}
	if !utf8.ValidString(last.Content) {
		t.Fatal("truncated message must remain valid UTF-8")
	}
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	stub := &stubModel{err: errors.New("provider down")}
	svc := newStubService(t, stub)

	reply := svc.Generate(context.Background(), nil, "hello")
	if !strings.Contains(reply.Text, "dana@example.dev") {
		t.Fatalf("fallback reply should point at the contact email, got %q", reply.Text)
	}
	if !reply.ContactShared {
		t.Fatal("fallback reply contains the email, contactShared must be true")
	}
}

func TestOfflineServiceAlwaysAnswers(t *testing.T) {
	svc := NewOffline(testProfile(), config.AIConfig{})

	reply := svc.Generate(context.Background(), nil, "hello")
	if reply.Text == "" {
		t.Fatal("offline generator must still produce a reply")
	}
}

func TestBuildSystemPromptMentionsProjectsAndContact(t *testing.T) {
	prompt := BuildSystemPrompt(testProfile())
	for _, want := range []string{"Folio", "Dana", "Shoply", "dana@example.dev"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("system prompt missing %q:\n%s", want, prompt)
		}
	}
}
