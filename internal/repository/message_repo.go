package repository

import (
	"errors"
	"fmt"

	"duit/internal/domain"
	"duit/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

func (r *MessageRepository) ListByRoom(roomID uint, limit int) ([]models.Message, error) {
	var out []models.Message
	q := r.db.Where("room_id = ?", roomID).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// LastAsk returns the most recent "ask" exchange in a room, oldest first, for
// replay as model context.
func (r *MessageRepository) LastAsk(roomID uint, n int) ([]models.Message, error) {
	var out []models.Message
	err := r.db.Where("room_id = ? AND chat_status = ?", roomID, domain.ChatStatusAsk).
		Order("id DESC").Limit(n).Find(&out).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *RoomRepository) ListByUser(userID uint) ([]models.Room, error) {
	var out []models.Room
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (r *RoomRepository) GetOwned(userID, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", domain.ErrNotFound, roomID)
		}
		return nil, err
	}
	if room.UserID != userID {
		return nil, fmt.Errorf("%w: room %d", domain.ErrForbidden, roomID)
	}
	return &room, nil
}
