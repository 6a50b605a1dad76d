package config

import (
	"errors"
	"fmt"
	"os"

	"duobot/internal/repository"
	"duobot/internal/services/finance_bot"
	"duobot/internal/services/game_bot"
	"duobot/internal/services/http_server"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrWebhookWithoutServer = errors.New("webhook run mode needs http_server")

type Config struct {
	Repository *repository.Config  `yaml:"repository" validate:"required"`
	FinanceBot *finance_bot.Config `yaml:"finance_bot" validate:"required_without=GameBot"`
	GameBot    *game_bot.Config    `yaml:"game_bot" validate:"required_without=FinanceBot"`
	HttpServer *http_server.Config `yaml:"http_server"`
}

// LoadConfigFromFile reads the yaml config at path. ${VAR} references are
// expanded from the environment, which is first extended with envPath if
// that file exists.
func LoadConfigFromFile(path, envPath string) (cfg *Config, err error) {
	if envPath != "" {
		if err = godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if _, err = os.Stat(path); err != nil {
		return nil, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(bytes))), &cfg); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("empty config: %s", path)
	}

	if cfg.FinanceBot != nil {
		cfg.FinanceBot.SetDefaults()
	}
	if cfg.GameBot != nil {
		cfg.GameBot.SetDefaults()
	}

	if err = validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	if cfg.HttpServer == nil && cfg.usesWebhook() {
		return nil, ErrWebhookWithoutServer
	}
	return cfg, nil
}

func (c *Config) usesWebhook() bool {
	return (c.FinanceBot != nil && c.FinanceBot.Telegram.Webhook()) ||
		(c.GameBot != nil && c.GameBot.Telegram.Webhook())
}
