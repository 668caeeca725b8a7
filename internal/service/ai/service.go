package ai

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"folioassist/internal/analysis/intent"
	"folioassist/internal/config"
	"folioassist/internal/model/assistant"
	"folioassist/internal/model/chat"
)

const (
	// historyLimit bounds how many prior messages reach the provider.
	historyLimit = 10
	// maxUserMessageChars bounds the incoming message before it is used.
	maxUserMessageChars = 1000
)

// Reply is the generated response plus the metadata derived from it.
type Reply struct {
	Text            string
	ContactShared   bool
	FollowupActions []string
}

// Service generates assistant replies through the completion provider.
// Provider failures never surface: the caller always gets a usable
// reply, falling back to a canned one that points at the contact email.
type Service struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	profile *assistant.Profile
	cfg     config.AIConfig
}

// NewService builds the provider-backed generator.
func NewService(ctx context.Context, profile *assistant.Profile, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	return newService(ctx, chatModel, profile, cfg)
}

// NewOffline builds a generator with no provider behind it; every call
// takes the fallback path. Used when credentials are absent so the chat
// endpoint keeps answering.
func NewOffline(profile *assistant.Profile, cfg config.AIConfig) *Service {
	return &Service{profile: profile, cfg: cfg}
}

func newService(ctx context.Context, chatModel model.BaseChatModel, profile *assistant.Profile, cfg config.AIConfig) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}

	return &Service{chain: runnable, profile: profile, cfg: cfg}, nil
}

// Generate produces the assistant reply for one turn. history is the
// session transcript before the new user message was appended.
func (s *Service) Generate(ctx context.Context, history []chat.Message, userMessage string) Reply {
	userMessage = truncate(userMessage, maxUserMessageChars)

	text := s.invoke(ctx, history, userMessage)
	detection := intent.Analyze(text, s.contactRefs())

	return Reply{
		Text:            text,
		ContactShared:   detection.ContactShared,
		FollowupActions: detection.FollowupActions,
	}
}

func (s *Service) invoke(ctx context.Context, history []chat.Message, userMessage string) string {
	if s.chain == nil {
		return s.fallbackReply()
	}

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	input := map[string]any{
		"system":  BuildSystemPrompt(s.profile),
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}

	response, err := s.chain.Invoke(callCtx, input)
	if err != nil {
		// A provider timeout or failure is recovered locally; the chat
		// endpoint still answers.
		log.Printf("[ai] provider call failed, serving fallback: %v", err)
		return s.fallbackReply()
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return response.Content
}

func (s *Service) contactRefs() intent.ContactRefs {
	return intent.ContactRefs{
		Email:       s.profile.ContactEmail,
		Phone:       s.profile.Phone,
		BookingLink: s.profile.BookingLink,
	}
}

func (s *Service) fallbackReply() string {
	if s.profile.ContactEmail != "" {
		return fmt.Sprintf(
			"Sorry, I'm having trouble answering right now. You can always reach %s directly at %s.",
			s.profile.OwnerName, s.profile.ContactEmail,
		)
	}
	return "Sorry, I'm having trouble answering right now. Please try again in a moment."
}

// buildHistoryMessages converts the tail of the transcript into provider
// messages. Never more than historyLimit entries.
func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}

// truncate bounds text to limit bytes, backing off to a rune boundary
// so the provider never sees a split multibyte character.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
