package telegram

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client sends notification messages through up to three bots: one for
// customers, one for couriers, one for admins. Bots whose token is empty
// are simply disabled.
type Client struct {
	clientBot  *tgbotapi.BotAPI
	courierBot *tgbotapi.BotAPI
	adminBot   *tgbotapi.BotAPI
}

func NewClient(clientToken, courierToken, adminToken string) *Client {
	return &Client{
		clientBot:  newBot(clientToken),
		courierBot: newBot(courierToken),
		adminBot:   newBot(adminToken),
	}
}

func newBot(token string) *tgbotapi.BotAPI {
	if token == "" {
		return nil
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return nil
	}
	return bot
}

func (c *Client) send(bot *tgbotapi.BotAPI, chatID, text string) error {
	if bot == nil {
		return fmt.Errorf("bot is not configured")
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}

	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = bot.Send(msg)
	return err
}

func (c *Client) NotifyClient(chatID, text string) error {
	return c.send(c.clientBot, chatID, text)
}

func (c *Client) NotifyCourier(chatID, text string) error {
	return c.send(c.courierBot, chatID, text)
}

func (c *Client) NotifyAdmin(chatID, text string) error {
	return c.send(c.adminBot, chatID, text)
}
