package bot_runner

import "time"

const (
	RunModeLongpoll = "longpoll"
	RunModeWebhook  = "webhook"
)

type Config struct {
	Token       string        `yaml:"token" validate:"required"`
	RunMode     string        `yaml:"run_mode" validate:"omitempty,oneof=longpoll webhook"`
	PollTimeout time.Duration `yaml:"poll_timeout"`
	// WebhookUrl is registered with Telegram on start when set in webhook mode.
	WebhookUrl    string `yaml:"webhook_url" validate:"omitempty,url"`
	WebhookSecret string `yaml:"webhook_secret"`
}

func (c *Config) Webhook() bool {
	return c.RunMode == RunModeWebhook
}
