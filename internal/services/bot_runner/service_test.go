package bot_runner

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"duobot/internal/telegramtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type echoRegistrar struct{}

func (echoRegistrar) Register(bot *tele.Bot) {
	bot.Handle(tele.OnText, func(c tele.Context) error {
		return c.Send("echo: " + c.Text())
	})
}

func TestConsumeWebhook(t *testing.T) {
	api := telegramtest.New(t)
	s := New("echo", &Config{Token: telegramtest.Token, RunMode: RunModeWebhook}, echoRegistrar{}, slog.Default())
	bot, err := s.NewBot(api.Settings())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.consumeWebhook(ctx, bot) }()

	s.Queue().Put(api.TextUpdate(1, "Alice", "first"))
	s.Queue().Put(api.TextUpdate(1, "Alice", "second"))

	assert.Eventually(t, func() bool { return len(api.Sent()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	sent := api.Sent()
	assert.Equal(t, "echo: first", sent[0].Text())
	assert.Equal(t, "echo: second", sent[1].Text())
}

func TestNewBotIsSynchronous(t *testing.T) {
	api := telegramtest.New(t)
	s := New("echo", &Config{Token: telegramtest.Token}, echoRegistrar{}, slog.Default())
	bot, err := s.NewBot(api.Settings())
	require.NoError(t, err)

	bot.ProcessUpdate(api.TextUpdate(1, "Alice", "hi"))

	assert.Equal(t, "echo: hi", api.Last(t).Text())
	assert.Equal(t, "1", api.Last(t).Params["chat_id"])
}

func TestRunMode(t *testing.T) {
	assert.False(t, (&Config{}).Webhook())
	assert.True(t, (&Config{RunMode: RunModeWebhook}).Webhook())
	assert.Equal(t, RunModeLongpoll, New("x", &Config{}, echoRegistrar{}, slog.Default()).runMode())
}
