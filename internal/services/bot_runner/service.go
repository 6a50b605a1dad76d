package bot_runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"duobot/internal/metrics"
	"duobot/internal/queue"

	"github.com/prometheus/client_golang/prometheus"
	tele "gopkg.in/telebot.v3"
)

const (
	defaultPollTimeout = 10 * time.Second
	webhookQueueSize   = 64
)

// Registrar installs a bot's handlers.
type Registrar interface {
	Register(bot *tele.Bot)
}

// Service runs one Telegram bot, either long polling or consuming webhook
// updates from its queue. Updates are processed one at a time.
type Service struct {
	name string
	cfg  *Config
	reg  Registrar
	q    *queue.Queue[tele.Update]
	l    *slog.Logger
}

func New(name string, cfg *Config, reg Registrar, l *slog.Logger) *Service {
	return &Service{
		name: name,
		cfg:  cfg,
		reg:  reg,
		q:    queue.NewBufferedQueue[tele.Update](webhookQueueSize),
		l:    l.With("name", "BotRunner", "bot", name),
	}
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Config() *Config {
	return s.cfg
}

// Queue receives webhook updates.
func (s *Service) Queue() *queue.Queue[tele.Update] {
	return s.q
}

// NewBot builds a synchronous bot with the service's handlers and middleware installed.
func (s *Service) NewBot(settings tele.Settings) (*tele.Bot, error) {
	settings.Synchronous = true
	if settings.OnError == nil {
		settings.OnError = s.onError
	}
	bot, err := tele.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("telebot error: %w", err)
	}
	bot.Use(s.countUpdates)
	s.reg.Register(bot)
	return bot, nil
}

func (s *Service) Run(ctx context.Context) error {
	pollTimeout := s.cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	bot, err := s.NewBot(tele.Settings{
		Token:  s.cfg.Token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return err
	}
	s.l.Info("bot is ready", "username", bot.Me.Username, "mode", s.runMode())

	if s.cfg.Webhook() {
		return s.consumeWebhook(ctx, bot)
	}
	return s.poll(ctx, bot)
}

func (s *Service) poll(ctx context.Context, bot *tele.Bot) error {
	if err := bot.RemoveWebhook(); err != nil {
		s.l.Warn("failed to delete webhook", "err", err.Error())
	}

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		s.l.Info("stopping bot")
		bot.Stop()
		<-runDone
	case <-runDone:
	}
	return nil
}

func (s *Service) consumeWebhook(ctx context.Context, bot *tele.Bot) error {
	if s.cfg.WebhookUrl != "" {
		err := bot.SetWebhook(&tele.Webhook{
			Endpoint:    &tele.WebhookEndpoint{PublicURL: s.cfg.WebhookUrl},
			SecretToken: s.cfg.WebhookSecret,
		})
		if err != nil {
			return fmt.Errorf("set webhook: %w", err)
		}
		s.l.Info("webhook registered", "url", s.cfg.WebhookUrl)
	}

	for {
		select {
		case <-ctx.Done():
			s.l.Info("stopping bot")
			return nil
		case update := <-s.q.AsChan():
			bot.ProcessUpdate(update)
		}
	}
}

func (s *Service) countUpdates(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		metrics.TelegramUpdatesReceived.With(prometheus.Labels{"bot": s.name}).Inc()
		if sender := c.Sender(); sender != nil {
			s.l.Debug("received telegram update", "id", c.Update().ID, "userId", sender.ID)
		}
		return next(c)
	}
}

func (s *Service) onError(err error, c tele.Context) {
	l := s.l
	if c != nil && c.Sender() != nil {
		l = l.With("userId", c.Sender().ID)
	}
	l.Error(fmt.Errorf("handler error: %w", err).Error())
}

func (s *Service) runMode() string {
	if s.cfg.Webhook() {
		return RunModeWebhook
	}
	return RunModeLongpoll
}
