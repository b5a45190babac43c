package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/ports"
)

// BotChatRepositoryImpl implements the BotChatRepository interface
type BotChatRepositoryImpl struct {
	db *sqlx.DB
}

// NewBotChatRepository creates a new bot chat repository
func NewBotChatRepository(db *sqlx.DB) ports.BotChatRepository {
	return &BotChatRepositoryImpl{db: db}
}

// Save links a chat to a user, reviving a previously removed link for the
// same pair instead of inserting a duplicate row.
func (r *BotChatRepositoryImpl) Save(ctx context.Context, chatID int64, userID uuid.UUID) error {
	query := `
		INSERT INTO bot_chats (chat_id, user_id, is_deleted)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (chat_id, user_id) DO UPDATE SET is_deleted = FALSE`

	if _, err := r.db.ExecContext(ctx, query, chatID, userID); err != nil {
		return fmt.Errorf("save bot chat: %w", err)
	}

	return nil
}

// GetByUserID returns nil without error when the user has no linked chat.
func (r *BotChatRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.BotChat, error) {
	query := `
		SELECT id, chat_id, user_id, is_deleted
		FROM bot_chats
		WHERE user_id = $1 AND ` + notDeleted

	var chat entities.BotChat
	err := r.db.GetContext(ctx, &chat, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get bot chat by user: %w", err)
	}

	return &chat, nil
}
