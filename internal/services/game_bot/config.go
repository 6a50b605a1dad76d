package game_bot

import (
	"time"

	"duobot/internal/clients"
	"duobot/internal/obscure"
	"duobot/internal/services/bot_runner"
)

const defaultQuery = "car"

type Config struct {
	Telegram *bot_runner.Config `yaml:"telegram" validate:"required"`
	Unsplash *clients.Config    `yaml:"unsplash" validate:"required"`
	Dadata   *clients.Config    `yaml:"dadata" validate:"required"`
	// Query selects the random photos.
	Query          string        `yaml:"query"`
	BlurSigma      float64       `yaml:"blur_sigma" validate:"gte=0"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func (c *Config) SetDefaults() {
	if c.Query == "" {
		c.Query = defaultQuery
	}
	if c.BlurSigma == 0 {
		c.BlurSigma = obscure.DefaultSigma
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = clients.DefaultTimeout
	}
}
