package notify

import (
	"errors"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"

	"taxiservice/pkg/models"
)

// DefaultSendTimeout bounds a single Bot API call.
const DefaultSendTimeout = 5 * time.Second

type telegram struct {
	bot    *tele.Bot
	chatID tele.ChatID
}

type telegramOptions struct {
	apiURL  string
	timeout time.Duration
}

type TelegramOption func(*telegramOptions)

// WithAPIURL points the bot at another Bot API server.
func WithAPIURL(url string) TelegramOption {
	return func(o *telegramOptions) { o.apiURL = url }
}

func WithSendTimeout(d time.Duration) TelegramOption {
	return func(o *telegramOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewTelegram sends through the admin bot without polling for updates.
func NewTelegram(token string, adminID int64, opts ...TelegramOption) (Notifier, error) {
	if token == "" || adminID == 0 {
		return nil, errors.New("telegram notifier needs a bot token and an admin id")
	}
	o := telegramOptions{timeout: DefaultSendTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := tele.NewBot(tele.Settings{
		URL:     o.apiURL,
		Token:   token,
		Client:  &http.Client{Timeout: o.timeout},
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	return &telegram{bot: b, chatID: tele.ChatID(adminID)}, nil
}

func (t *telegram) AssignmentChanged(driver *models.Driver, car *models.Car, assigned bool) error {
	_, err := t.bot.Send(t.chatID, assignmentMessage(driver, car, assigned))
	return err
}
