package chat_test

import (
	"context"
	"testing"

	chatmodel "folioassist/internal/model/chat"
	chat "folioassist/internal/service/chat"
	"folioassist/internal/store"
)

func newService() *chat.Service {
	return chat.NewService(store.NewMemorySessionStore(0))
}

func TestResumeCreatesAndReturnsSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.Resume(ctx, "")
	if err != nil {
		t.Fatalf("Resume err: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected generated session id")
	}

	resumed, err := svc.Resume(ctx, session.ID)
	if err != nil {
		t.Fatalf("Resume err: %v", err)
	}
	if resumed.ID != session.ID {
		t.Fatalf("expected same session, got %s", resumed.ID)
	}
}

func TestRecordTurnsDoubleHistory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, _ := svc.Resume(ctx, "")

	const turns = 4
	for i := 0; i < turns; i++ {
		if err := svc.Record(ctx, session.ID, chatmodel.RoleUser, "question"); err != nil {
			t.Fatalf("Record user err: %v", err)
		}
		if err := svc.Record(ctx, session.ID, chatmodel.RoleAssistant, "answer"); err != nil {
			t.Fatalf("Record assistant err: %v", err)
		}
	}

	got, err := svc.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(got.Messages) != 2*turns {
		t.Fatalf("expected %d messages after %d turns, got %d", 2*turns, turns, len(got.Messages))
	}
}

func TestRecordRejectsUnknownRole(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, _ := svc.Resume(ctx, "")
	if err := svc.Record(ctx, session.ID, "system", "nope"); err == nil {
		t.Fatal("expected error for unsupported role")
	}
}

func TestGetUnknownSession(t *testing.T) {
	svc := newService()
	if _, err := svc.Get(context.Background(), "missing"); err != chat.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteUnknownSessionSucceeds(t *testing.T) {
	svc := newService()
	if err := svc.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
}
