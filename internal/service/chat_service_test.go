package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/repository"
)

type fakeModel struct {
	complete   func(ctx context.Context, system, user string) (string, error)
	transcribe func(ctx context.Context, filename string, audio io.Reader) (string, error)
}

func (f *fakeModel) Complete(ctx context.Context, system, user string) (string, error) {
	return f.complete(ctx, system, user)
}

func (f *fakeModel) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	return f.transcribe(ctx, filename, audio)
}

func newChatFixture(t *testing.T, model *fakeModel) (*fixture, *ChatService, uint) {
	t.Helper()
	f := newFixture(t)
	room := models.Room{UserID: f.userID, Name: "main"}
	if err := f.db.Create(&room).Error; err != nil {
		t.Fatal(err)
	}
	svc := NewChatService(
		model,
		f.svc,
		NewSummaryService(f.db),
		repository.NewMessageRepository(f.db),
		repository.NewCategoryRepository(f.db),
		nil,
	)
	return f, svc, room.ID
}

func TestHandleInputCreatesTransaction(t *testing.T) {
	model := &fakeModel{
		complete: func(_ context.Context, system, user string) (string, error) {
			if !strings.Contains(user, "Categories:") {
				t.Errorf("prompt missing category list: %q", user)
			}
			return `{"name": "Lunch", "amount_cents": 2500, "date": "2026-08-20", "category_name": "Food", "category_type": "expense", "reply": "Noted 25.00 for lunch."}`, nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)

	reply, tx, err := svc.HandleInput(context.Background(), f.userID, roomID, f.wallet.ID, "lunch at warteg 25k")
	if err != nil {
		t.Fatal(err)
	}
	if tx.AmountCents != 2500 {
		t.Errorf("amount = %d, want 2500", tx.AmountCents)
	}
	if tx.Name != "Lunch" {
		t.Errorf("name = %q, want Lunch", tx.Name)
	}
	if tx.MessageID == nil {
		t.Error("transaction not linked to the originating message")
	}
	if got := f.balance(t); got != -2500 {
		t.Errorf("balance = %d, want -2500", got)
	}
	if reply.UserID != nil {
		t.Error("assistant reply should have nil UserID")
	}
	if reply.Text != "Noted 25.00 for lunch." {
		t.Errorf("reply = %q", reply.Text)
	}
	if got := tx.Date.Format("2006-01-02"); got != "2026-08-20" {
		t.Errorf("date = %s, want 2026-08-20", got)
	}

	var count int64
	if err := f.db.Model(&models.Message{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("messages stored = %d, want 2 (user + reply)", count)
	}
}

func TestHandleInputToleratesFencedJSON(t *testing.T) {
	model := &fakeModel{
		complete: func(_ context.Context, _, _ string) (string, error) {
			return "Sure! ```json\n{\"name\": \"Salary\", \"amount_cents\": 100000, \"category_name\": \"Salary\", \"category_type\": \"income\", \"reply\": \"ok\"}\n```", nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)
	_, tx, err := svc.HandleInput(context.Background(), f.userID, roomID, f.wallet.ID, "got paid")
	if err != nil {
		t.Fatal(err)
	}
	if tx.AmountCents != 100000 {
		t.Errorf("amount = %d, want 100000", tx.AmountCents)
	}
	if got := f.balance(t); got != 100000 {
		t.Errorf("balance = %d, want 100000", got)
	}
}

func TestHandleInputUnknownCategory(t *testing.T) {
	model := &fakeModel{
		complete: func(_ context.Context, _, _ string) (string, error) {
			return `{"name": "x", "amount_cents": 100, "category_name": "Yachts", "category_type": "expense", "reply": "ok"}`, nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)
	_, _, err := svc.HandleInput(context.Background(), f.userID, roomID, f.wallet.ID, "bought a yacht")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if got := f.balance(t); got != 0 {
		t.Errorf("balance = %d, want 0 after failed input", got)
	}
}

func TestHandleInputMalformedModelOutput(t *testing.T) {
	model := &fakeModel{
		complete: func(_ context.Context, _, _ string) (string, error) {
			return "I could not parse that, sorry", nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)
	_, _, err := svc.HandleInput(context.Background(), f.userID, roomID, f.wallet.ID, "???")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}

func TestHandleInputModelRefusal(t *testing.T) {
	model := &fakeModel{
		complete: func(_ context.Context, _, _ string) (string, error) {
			return `{"error": "not a financial event"}`, nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)
	_, _, err := svc.HandleInput(context.Background(), f.userID, roomID, f.wallet.ID, "how are you")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestHandleAskAnswersFromSummary(t *testing.T) {
	var sawSummary bool
	model := &fakeModel{
		complete: func(_ context.Context, _, user string) (string, error) {
			sawSummary = strings.Contains(user, "Wallet") && strings.Contains(user, "balance")
			return "You spent 2500 cents on food this month.", nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)
	f.create(t, domain.CategoryExpense, 2500)

	reply, err := svc.HandleAsk(context.Background(), f.userID, roomID, f.wallet.ID, "how much did I spend?")
	if err != nil {
		t.Fatal(err)
	}
	if !sawSummary {
		t.Error("prompt did not include the wallet summary")
	}
	if reply.ChatStatus != domain.ChatStatusAsk {
		t.Errorf("chat status = %q, want ask", reply.ChatStatus)
	}
	// Ask never writes to the ledger.
	if got := f.balance(t); got != -2500 {
		t.Errorf("balance = %d, want unchanged -2500", got)
	}
}

func TestHandleAskEmptyReply(t *testing.T) {
	model := &fakeModel{
		complete: func(_ context.Context, _, _ string) (string, error) {
			return "  \n", nil
		},
	}
	f, svc, roomID := newChatFixture(t, model)
	_, err := svc.HandleAsk(context.Background(), f.userID, roomID, f.wallet.ID, "anything?")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}

func TestTranscribeWrapsModelError(t *testing.T) {
	model := &fakeModel{
		transcribe: func(_ context.Context, _ string, _ io.Reader) (string, error) {
			return "", errors.New("upstream 500")
		},
	}
	_, svc, _ := newChatFixture(t, model)
	_, err := svc.Transcribe(context.Background(), "note.m4a", strings.NewReader("audio"))
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}
