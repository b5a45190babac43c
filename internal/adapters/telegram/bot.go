package telegram

import (
	"context"
	"fmt"
	"regexp"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/infrastructure/config"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Bot bridges the application to Telegram. Outbound it implements the
// Notifier port; inbound it long-polls for messages so users can link
// their chat by sending their registered email address.
type Bot struct {
	api      *tgbotapi.BotAPI
	userRepo ports.UserRepository
	chatRepo ports.BotChatRepository
	logger   *logger.Logger
}

// NewBot connects to the Telegram API with the configured token.
func NewBot(cfg config.TelegramConfig, userRepo ports.UserRepository, chatRepo ports.BotChatRepository, logger *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}

	return &Bot{
		api:      api,
		userRepo: userRepo,
		chatRepo: chatRepo,
		logger:   logger,
	}, nil
}

// Run long-polls for inbound updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	b.logger.Infow("Telegram bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message
	var reply string

	switch {
	case message.Text == "/start":
		reply = fmt.Sprintf("Hello, %s please enter the e-mail address registered in the service.",
			message.From.FirstName)
	case emailPattern.MatchString(message.Text):
		reply = b.linkChat(ctx, message.Chat.ID, message.Text)
	default:
		return
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(message.Chat.ID, reply)); err != nil {
		b.logger.Warnw("Can't send message to telegram", "chat_id", message.Chat.ID, "error", err)
	}
}

// linkChat ties the chat to the account registered under the given email.
func (b *Bot) linkChat(ctx context.Context, chatID int64, email string) string {
	user, err := b.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "There are no users with this email address, please enter a valid email"
	}

	if err := b.chatRepo.Save(ctx, chatID, user.ID); err != nil {
		b.logger.Errorw("Can't link telegram chat", "chat_id", chatID, "user_id", user.ID, "error", err)
		return "Something went wrong, please try again later"
	}

	return "Thank you! Now you will receive messages from your projects here =_)"
}

// NotifyUser sends text to the user's linked chat. Users without a linked
// chat are skipped silently.
func (b *Bot) NotifyUser(ctx context.Context, userID uuid.UUID, text string) error {
	if text == "" {
		return nil
	}

	chat, err := b.chatRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if chat == nil {
		return nil
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(chat.ChatID, text)); err != nil {
		return fmt.Errorf("Can't send message: %w", err)
	}

	return nil
}

// NotifyUsers sends text to every recipient with a linked chat.
func (b *Bot) NotifyUsers(ctx context.Context, userIDs []uuid.UUID, text string) error {
	for _, userID := range userIDs {
		if err := b.NotifyUser(ctx, userID, text); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Notifier = (*Bot)(nil)
