package finance_bot

import (
	"time"

	"duobot/internal/clients"
	"duobot/internal/services/bot_runner"
)

const (
	defaultBaseCurrency  = "USD"
	defaultQuoteCurrency = "RUB"
)

var (
	defaultCurrencies = []string{"USD", "EUR"}
	defaultTips       = []string{
		"Tip 1: Keep a budget and track your expenses.",
		"Tip 2: Put part of your income aside as savings.",
		"Tip 3: Buy goods on discounts and sales.",
	}
)

type Config struct {
	Telegram      *bot_runner.Config `yaml:"telegram" validate:"required"`
	ExchangeRates *clients.Config    `yaml:"exchange_rates" validate:"required"`
	// BaseCurrency is the currency rates are requested for.
	BaseCurrency string `yaml:"base_currency" validate:"omitempty,len=3"`
	// QuoteCurrency is the currency every rate is shown in.
	QuoteCurrency  string        `yaml:"quote_currency" validate:"omitempty,len=3"`
	Currencies     []string      `yaml:"currencies" validate:"dive,len=3"`
	Tips           []string      `yaml:"tips" validate:"dive,required"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func (c *Config) SetDefaults() {
	if c.BaseCurrency == "" {
		c.BaseCurrency = defaultBaseCurrency
	}
	if c.QuoteCurrency == "" {
		c.QuoteCurrency = defaultQuoteCurrency
	}
	if len(c.Currencies) == 0 {
		c.Currencies = defaultCurrencies
	}
	if len(c.Tips) == 0 {
		c.Tips = defaultTips
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = clients.DefaultTimeout
	}
}
