package handler

import (
	"net/http"

	"duit/internal/domain"
	"duit/internal/middleware"
	"duit/internal/models"
	"duit/internal/repository"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc  *service.ChatService
	roomRepo *repository.RoomRepository
	msgRepo  *repository.MessageRepository
}

func NewChatHandler(chatSvc *service.ChatService, roomRepo *repository.RoomRepository, msgRepo *repository.MessageRepository) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, roomRepo: roomRepo, msgRepo: msgRepo}
}

type RoomRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *ChatHandler) CreateRoom(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	room := &models.Room{UserID: userID, Name: req.Name}
	if err := h.roomRepo.Create(room); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "room created", room)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rooms, err := h.roomRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "rooms", rooms)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	roomID, err := paramID(c, "id")
	if err != nil {
		return
	}
	if _, err := h.roomRepo.GetOwned(userID, roomID); err != nil {
		respondError(c, err)
		return
	}
	msgs, err := h.msgRepo.ListByRoom(roomID, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "messages", msgs)
}

type MessageRequest struct {
	WalletID   uint   `json:"wallet_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	ChatStatus string `json:"chat_status" binding:"required,oneof=input ask"`
}

// PostMessage routes an "input" message through the AI translator (which may
// create a transaction) and an "ask" message through the summary-backed
// question flow.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	roomID, err := paramID(c, "id")
	if err != nil {
		return
	}
	if _, err := h.roomRepo.GetOwned(userID, roomID); err != nil {
		respondError(c, err)
		return
	}
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if req.ChatStatus == domain.ChatStatusInput {
		reply, tx, err := h.chatSvc.HandleInput(ctx, userID, roomID, req.WalletID, req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, "message processed", gin.H{"reply": reply, "transaction": tx})
		return
	}
	reply, err := h.chatSvc.HandleAsk(ctx, userID, roomID, req.WalletID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "message processed", gin.H{"reply": reply})
}

// Transcribe converts an uploaded voice note to text the client can then
// send as a chat message.
func (h *ChatHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}
	defer file.Close()
	text, err := h.chatSvc.Transcribe(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "transcribed", gin.H{"text": text})
}
