package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSendText(t *testing.T) {
	var gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottok-123/sendMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	tg := NewTelegram("tok-123", "42", zerolog.Nop())
	tg.api = srv.URL

	require.NoError(t, tg.SendText(context.Background(), "hello"))
	assert.Equal(t, "42", gotChat)
	assert.Equal(t, "hello", gotText)
}

func TestTelegramSendText_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	tg := NewTelegram("tok", "42", zerolog.Nop())
	tg.api = srv.URL

	require.Error(t, tg.SendText(context.Background(), "hello"))
}

func TestTelegramListen_RepliesOnConfiguredChat(t *testing.T) {
	var mu sync.Mutex
	var replies []string
	served := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bottok/getUpdates":
			mu.Lock()
			first := !served
			served = true
			mu.Unlock()
			if first {
				// One message from the configured chat, one from a stranger.
				fmt.Fprint(w, `{"ok":true,"result":[
					{"update_id":7,"message":{"chat":{"id":42},"text":"/start"}},
					{"update_id":8,"message":{"chat":{"id":99},"text":"/start"}}
				]}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case "/bottok/sendMessage":
			require.NoError(t, r.ParseForm())
			mu.Lock()
			replies = append(replies, r.PostForm.Get("text"))
			mu.Unlock()
			fmt.Fprint(w, `{"ok":true}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tg := NewTelegram("tok", "42", zerolog.Nop())
	tg.api = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tg.Listen(ctx, func(ctx context.Context, text string) string {
			return "reply to " + text
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(replies) == 1
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"reply to /start"}, replies)
}
