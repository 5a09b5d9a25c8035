package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/repository"
	"duit/pkg/llm"
)

// ChatService turns free-text chat into ledger writes. "input" messages are
// translated by the language model into a structured proposal and forwarded
// to the transaction lifecycle service unchanged; "ask" messages only produce
// a reply grounded in the wallet summary. A model failure on the input path
// aborts the whole operation — no message without its transaction.
type ChatService struct {
	model      llm.Client
	txSvc      *TransactionService
	summarySvc *SummaryService
	msgRepo    *repository.MessageRepository
	catRepo    *repository.CategoryRepository
	broadcast  func(roomID uint, payload interface{}) // optional, e.g. websocket hub
}

func NewChatService(
	model llm.Client,
	txSvc *TransactionService,
	summarySvc *SummaryService,
	msgRepo *repository.MessageRepository,
	catRepo *repository.CategoryRepository,
	broadcast func(roomID uint, payload interface{}),
) *ChatService {
	return &ChatService{
		model:      model,
		txSvc:      txSvc,
		summarySvc: summarySvc,
		msgRepo:    msgRepo,
		catRepo:    catRepo,
		broadcast:  broadcast,
	}
}

// proposal is the JSON contract the model must answer with in input mode.
type proposal struct {
	Name         string `json:"name"`
	AmountCents  int64  `json:"amount_cents"`
	Date         string `json:"date"` // YYYY-MM-DD, optional
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
	Reply        string `json:"reply"`
	Error        string `json:"error"`
}

const inputSystemPrompt = `You are a bookkeeping assistant. The user describes a financial event in free text.
Answer ONLY with a JSON object: {"name": string, "amount_cents": integer, "date": "YYYY-MM-DD" or "", "category_name": string, "category_type": "income"|"expense"|"debt"|"loan", "reply": string}.
Pick category_name from the user's category list. amount_cents is the amount in cents. reply is a short confirmation in the user's language.
If the text is not a financial event, answer {"error": "reason"}.`

// HandleInput stores the user message, asks the model for a structured
// transaction, applies it through the lifecycle service, and stores + returns
// the assistant's reply message along with the created transaction.
func (s *ChatService) HandleInput(ctx context.Context, userID, roomID, walletID uint, text string) (*models.Message, *models.Transaction, error) {
	cats, err := s.catRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	userMsg := &models.Message{
		RoomID:     roomID,
		WalletID:   walletID,
		UserID:     &userID,
		Text:       text,
		ChatStatus: domain.ChatStatusInput,
	}
	if err := s.msgRepo.Create(userMsg); err != nil {
		return nil, nil, err
	}

	var names []string
	for _, c := range cats {
		names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.Type))
	}
	prompt := fmt.Sprintf("Categories: %s\nToday: %s\nText: %s",
		strings.Join(names, ", "), time.Now().Format("2006-01-02"), text)

	raw, err := s.model.Complete(ctx, inputSystemPrompt, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: language model: %v", domain.ErrExternalService, err)
	}
	var p proposal
	if err := json.Unmarshal([]byte(extractJSON(raw)), &p); err != nil {
		return nil, nil, fmt.Errorf("%w: malformed model response", domain.ErrExternalService)
	}
	if p.Error != "" {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrValidation, p.Error)
	}

	cat, err := s.catRepo.GetByName(userID, p.CategoryName)
	if err != nil {
		return nil, nil, err
	}
	date := time.Now()
	if p.Date != "" {
		if d, perr := time.Parse("2006-01-02", p.Date); perr == nil {
			date = d
		}
	}
	tx, err := s.txSvc.Create(userID, TransactionInput{
		WalletID:    walletID,
		CategoryID:  cat.ID,
		Name:        p.Name,
		Description: text,
		AmountCents: p.AmountCents,
		Date:        date,
		MessageID:   &userMsg.ID,
	})
	if err != nil {
		return nil, nil, err
	}

	reply := p.Reply
	if reply == "" {
		reply = fmt.Sprintf("Recorded %q: %d cents (%s).", p.Name, p.AmountCents, cat.Name)
	}
	replyMsg := s.storeReply(roomID, walletID, reply, domain.ChatStatusInput)
	return replyMsg, tx, nil
}

const askSystemPrompt = `You are a personal-finance assistant. Answer the user's question using the wallet summary provided. Be concise and concrete. Amounts are in cents.`

// HandleAsk answers a question from the wallet summary and recent ask
// history. Pure read on ledger state.
func (s *ChatService) HandleAsk(ctx context.Context, userID, roomID, walletID uint, text string) (*models.Message, error) {
	summary, err := s.summarySvc.WalletSummary(userID, walletID, time.Now())
	if err != nil {
		return nil, err
	}
	history, err := s.msgRepo.LastAsk(roomID, domain.AskHistoryLimit)
	if err != nil {
		return nil, err
	}
	userMsg := &models.Message{
		RoomID:     roomID,
		WalletID:   walletID,
		UserID:     &userID,
		Text:       text,
		ChatStatus: domain.ChatStatusAsk,
	}
	if err := s.msgRepo.Create(userMsg); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(summary.Describe())
	if len(history) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, m := range history {
			who := "assistant"
			if m.UserID != nil {
				who = "user"
			}
			fmt.Fprintf(&b, "%s: %s\n", who, m.Text)
		}
	}
	fmt.Fprintf(&b, "\nQuestion: %s", text)

	reply, err := s.model.Complete(ctx, askSystemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: language model: %v", domain.ErrExternalService, err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, fmt.Errorf("%w: empty model response", domain.ErrExternalService)
	}
	return s.storeReply(roomID, walletID, reply, domain.ChatStatusAsk), nil
}

// Transcribe converts uploaded audio to text via the model boundary.
func (s *ChatService) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	text, err := s.model.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", fmt.Errorf("%w: transcription: %v", domain.ErrExternalService, err)
	}
	return text, nil
}

func (s *ChatService) storeReply(roomID, walletID uint, text, status string) *models.Message {
	m := &models.Message{
		RoomID:     roomID,
		WalletID:   walletID,
		Text:       text,
		ChatStatus: status,
	}
	if err := s.msgRepo.Create(m); err != nil {
		log.Printf("[chat] store reply failed: room=%d err=%v", roomID, err)
		return m
	}
	if s.broadcast != nil {
		s.broadcast(roomID, m)
	}
	return m
}

// extractJSON tolerates models that wrap the JSON object in prose or fences.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
