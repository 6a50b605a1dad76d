package telegram_bot_handler

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"duobot/internal/queue"
	"duobot/internal/services/http_server/handlers"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	tele "gopkg.in/telebot.v3"
)

const (
	secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
	enqueueTimeout    = 5 * time.Second
)

type telegramBotHandler struct {
	secret string
	q      *queue.Queue[tele.Update]
	logger *slog.Logger
}

// New accepts webhook updates for one bot and hands them to q. Requests must
// carry secret in the secret token header when it is set.
func New(bot, secret string, q *queue.Queue[tele.Update], logger *slog.Logger) handlers.Handler {
	return &telegramBotHandler{
		secret: secret,
		q:      q,
		logger: logger.With("name", "TelegramBotHandler", "bot", bot),
	}
}

func (h *telegramBotHandler) Handle(ctx *fasthttp.RequestCtx) {
	if h.secret != "" {
		got := ctx.Request.Header.Peek(secretTokenHeader)
		if subtle.ConstantTimeCompare(got, []byte(h.secret)) != 1 {
			ctx.Error("unauthorized", fasthttp.StatusUnauthorized)
			return
		}
	}

	update := tele.Update{}
	if err := jsoniter.Unmarshal(ctx.Request.Body(), &update); err != nil {
		h.logger.Error(fmt.Sprintf("error handling request: %+v", err))
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}

	putCtx, cancel := context.WithTimeout(ctx, enqueueTimeout)
	defer cancel()
	if err := h.q.PutContext(putCtx, update); err != nil {
		h.logger.Warn("update dropped", "id", update.ID, "err", err.Error())
		ctx.Error("unavailable", fasthttp.StatusServiceUnavailable)
		return
	}
	h.logger.Debug("received Telegram update", "id", update.ID)
	ctx.Response.SetStatusCode(fasthttp.StatusOK)
}
