package alert

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the subset of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	Bot    Sender
	ChatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{Bot: bot, ChatID: chatID}, nil
}

func (t *Telegram) Raise(_ context.Context, a Alert) error {
	_, err := t.Bot.Send(tgbotapi.NewMessage(t.ChatID, "Payment alert "+a.String()))
	return err
}
