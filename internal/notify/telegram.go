package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const telegramAPI = "https://api.telegram.org"

// Telegram pushes messages through the bot sendMessage endpoint and reads
// commands with getUpdates long polling.
type Telegram struct {
	api    string
	token  string
	chatID string
	client *http.Client
	log    zerolog.Logger
}

func NewTelegram(token, chatID string, log zerolog.Logger) *Telegram {
	return &Telegram{
		api:    telegramAPI,
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

func (t *Telegram) SendAlert(ctx context.Context, a AlertPayload) error {
	_, body := Render(a)
	return t.SendText(ctx, body)
}

func (t *Telegram) SendText(ctx context.Context, text string) error {
	data := url.Values{}
	data.Set("chat_id", t.chatID)
	data.Set("text", text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.api, t.token)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: %s", resp.Status)
	}
	return nil
}

type telegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

func (t *Telegram) getUpdates(ctx context.Context, offset int64) ([]telegramUpdate, error) {
	q := url.Values{}
	q.Set("timeout", "25")
	if offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}

	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", t.api, t.token, q.Encode())
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram getUpdates: %s", resp.Status)
	}

	var payload struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if !payload.OK {
		return nil, fmt.Errorf("telegram getUpdates: not ok")
	}
	return payload.Result, nil
}

// Listen long-polls for incoming messages on the configured chat and answers
// each through handle. Runs until the context is cancelled; transient poll
// errors are logged and the loop continues.
func (t *Telegram) Listen(ctx context.Context, handle func(ctx context.Context, text string) string) error {
	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := t.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			t.log.Warn().Err(err).Msg("telegram poll failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			if upd.Message == nil {
				continue
			}
			// Ignore chats other than the configured one.
			if t.chatID != "" && strconv.FormatInt(upd.Message.Chat.ID, 10) != t.chatID {
				continue
			}
			if reply := handle(ctx, upd.Message.Text); reply != "" {
				if err := t.SendText(ctx, reply); err != nil {
					t.log.Warn().Err(err).Msg("telegram reply failed")
				}
			}
		}
	}
}
