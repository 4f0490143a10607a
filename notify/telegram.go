// Package notify pushes short Telegram notices to the class admin. It is
// optional glue: no token, no notifier, and a failed send is logged and
// forgotten.
package notify

import (
	"fmt"

	"class-order/config"
	"class-order/logging"
	"class-order/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New returns nil (a valid, inert notifier) when no token is configured.
func New(cfg config.TelegramConfig) (*Notifier, error) {
	if cfg.Token == "" || cfg.AdminChatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram notifier: %w", err)
	}
	return &Notifier{api: api, chatID: cfg.AdminChatID}, nil
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		logging.GetLogger().Warnf("telegram send: %v", err)
	}
}

// OrderSubmitted announces a student submission.
func (n *Notifier) OrderSubmitted(o models.Order) {
	n.send(fmt.Sprintf("訂單送出：%s號 %s，共 $%d", o.SeatNumber, o.UserName, o.TotalPrice))
}

// SystemToggled announces the ordering gate flipping.
func (n *Notifier) SystemToggled(isOpen bool) {
	if isOpen {
		n.send("訂餐系統已開放")
		return
	}
	n.send("訂餐系統已關閉")
}
