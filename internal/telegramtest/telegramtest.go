// Package telegramtest fakes the Telegram Bot API in memory so bot handlers
// can be driven with tele.Bot.ProcessUpdate.
package telegramtest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	tele "gopkg.in/telebot.v3"
)

const (
	Token  = "test-token"
	apiUrl = "http://api.telegram.test"
)

// Call is one recorded Bot API method call.
type Call struct {
	Method string
	Params map[string]string
	Files  []string
}

// Text returns the message text or the media caption.
func (c Call) Text() string {
	if text, ok := c.Params["text"]; ok {
		return text
	}
	return c.Params["caption"]
}

type API struct {
	mu       sync.Mutex
	calls    []Call
	listener *fasthttputil.InmemoryListener
	updateId int
}

func New(t *testing.T) *API {
	t.Helper()
	a := &API{listener: fasthttputil.NewInmemoryListener()}
	go func() { _ = fasthttp.Serve(a.listener, a.handle) }()
	t.Cleanup(func() { _ = a.listener.Close() })
	return a
}

// Settings returns offline bot settings pointed at the fake API.
func (a *API) Settings() tele.Settings {
	return tele.Settings{
		URL:         apiUrl,
		Token:       Token,
		Offline:     true,
		Synchronous: true,
		Client: &http.Client{Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return a.listener.Dial()
			},
		}},
	}
}

func (a *API) Bot(t *testing.T) *tele.Bot {
	t.Helper()
	bot, err := tele.NewBot(a.Settings())
	require.NoError(t, err)
	return bot
}

// Sent returns the sendMessage and sendPhoto calls in order.
func (a *API) Sent() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	var sent []Call
	for _, c := range a.calls {
		if c.Method == "sendMessage" || c.Method == "sendPhoto" {
			sent = append(sent, c)
		}
	}
	return sent
}

// Last returns the last sent message or photo.
func (a *API) Last(t *testing.T) Call {
	t.Helper()
	sent := a.Sent()
	require.NotEmpty(t, sent, "nothing was sent")
	return sent[len(sent)-1]
}

func (a *API) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = nil
}

// TextUpdate builds a private chat text message from userID.
func (a *API) TextUpdate(userID int64, firstName, text string) tele.Update {
	a.mu.Lock()
	a.updateId++
	id := a.updateId
	a.mu.Unlock()

	user := &tele.User{ID: userID, FirstName: firstName}
	return tele.Update{
		ID: id,
		Message: &tele.Message{
			ID:     id,
			Sender: user,
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate, FirstName: firstName},
			Text:   text,
		},
	}
}

func (a *API) handle(ctx *fasthttp.RequestCtx) {
	prefix := "/bot" + Token + "/"
	path := string(ctx.Path())
	if !strings.HasPrefix(path, prefix) {
		ctx.Error("not found", fasthttp.StatusNotFound)
		return
	}
	call := Call{Method: strings.TrimPrefix(path, prefix), Params: map[string]string{}}

	if form, err := ctx.MultipartForm(); err == nil {
		for k, v := range form.Value {
			if len(v) > 0 {
				call.Params[k] = v[0]
			}
		}
		for k := range form.File {
			call.Files = append(call.Files, k)
		}
	} else if len(ctx.PostBody()) > 0 {
		raw := map[string]any{}
		if err = jsoniter.Unmarshal(ctx.PostBody(), &raw); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusBadRequest)
			return
		}
		for k, v := range raw {
			call.Params[k] = fmt.Sprint(v)
		}
	}

	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()

	ctx.SetContentType("application/json")
	ctx.SetBodyString(response(call))
}

func response(call Call) string {
	chat := map[string]any{"id": chatId(call), "type": "private"}
	var result any = true
	switch call.Method {
	case "sendMessage":
		result = map[string]any{"message_id": 1, "date": 0, "chat": chat, "text": call.Params["text"]}
	case "sendPhoto":
		result = map[string]any{
			"message_id": 1,
			"date":       0,
			"chat":       chat,
			"caption":    call.Params["caption"],
			"photo": []map[string]any{
				{"file_id": "photo-id", "file_unique_id": "photo-unique-id", "width": 1, "height": 1},
			},
		}
	}
	body, _ := jsoniter.MarshalToString(map[string]any{"ok": true, "result": result})
	return body
}

func chatId(call Call) int64 {
	id, _ := strconv.ParseInt(call.Params["chat_id"], 10, 64)
	return id
}
