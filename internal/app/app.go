package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"duobot/internal/clients/dadata"
	"duobot/internal/clients/exchangerate"
	"duobot/internal/clients/unsplash"
	"duobot/internal/config"
	"duobot/internal/game"
	"duobot/internal/obscure"
	"duobot/internal/repository"
	"duobot/internal/repository/sqlite_repo"
	"duobot/internal/services/bot_runner"
	"duobot/internal/services/finance_bot"
	"duobot/internal/services/game_bot"
	"duobot/internal/services/http_server"
	"duobot/internal/services/http_server/handlers"
	"duobot/internal/services/http_server/handlers/debug_handler"
	"duobot/internal/services/http_server/handlers/metrics_handler"
	"duobot/internal/services/http_server/handlers/telegram_bot_handler"

	"github.com/cosiner/flag"
	"github.com/xlab/closer"
)

const (
	financeBotName = "finance"
	gameBotName    = "game"
)

type Params struct {
	Debug      bool   `names:"--debug" usage:"enable /debug route" default:"false"`
	ConfigPath string `names:"--config, -c" usage:"config file path" default:"./config.yaml"`
	EnvPath    string `names:"--env, -e" usage:"optional .env file with secrets referenced by the config" default:"./.env"`
}

type App struct {
	params *Params
}

func New() (App, error) {
	params, err := getValidatedParams()
	if err != nil {
		return App{}, err
	}
	return App{params: params}, nil
}

func (a App) Run() error {
	cfg, err := config.LoadConfigFromFile(a.params.ConfigPath, a.params.EnvPath)
	if err != nil {
		return err
	}

	repo, err := sqlite_repo.New(cfg.Repository)
	if err != nil {
		return err
	}

	runners, err := setupBots(cfg, repo)
	if err != nil {
		return err
	}

	errorCh := make(chan error)
	appCtx, wg := a.setupContextAndWg(context.Background(), errorCh)

	for _, runner := range runners {
		runner := runner
		wg.Add(1)
		go func() {
			defer wg.Done()
			errorCh <- runner.Run(appCtx)
		}()
	}

	if cfg.HttpServer != nil {
		httpServer := http_server.New(cfg.HttpServer, a.setupHandlers(cfg, runners, repo), slog.Default())
		wg.Add(1)
		go func() {
			defer wg.Done()
			errorCh <- httpServer.Run(appCtx)
		}()
	} else if a.params.Debug {
		slog.Warn("--debug has no effect without http_server config")
	}

	closer.Hold()
	return nil
}

func setupBots(cfg *config.Config, repo repository.Repository) ([]*bot_runner.Service, error) {
	var runners []*bot_runner.Service
	if cfg.FinanceBot != nil {
		rates := exchangerate.New(cfg.FinanceBot.ExchangeRates, nil)
		financeBot, err := finance_bot.New(cfg.FinanceBot, repo, rates, slog.Default())
		if err != nil {
			return nil, err
		}
		runners = append(runners, bot_runner.New(financeBotName, cfg.FinanceBot.Telegram, financeBot, slog.Default()))
	}
	if cfg.GameBot != nil {
		g := game.New(
			cfg.GameBot.Query,
			unsplash.New(cfg.GameBot.Unsplash, nil),
			dadata.New(cfg.GameBot.Dadata, nil),
			obscure.Blurrer(cfg.GameBot.BlurSigma),
			slog.Default(),
		)
		gameBot := game_bot.New(cfg.GameBot, g, slog.Default())
		runners = append(runners, bot_runner.New(gameBotName, cfg.GameBot.Telegram, gameBot, slog.Default()))
	}
	return runners, nil
}

// setupContextAndWg returns a context cancelled on app shutdown request and a wait group awaited on shutdown.
//
//	All non-nil errors received from errorCh after an app shutdown request will be logged as "App shutdown errors".
//	If an error is received from errorCh before an app shutdown request, closer.Close will be called.
func (a App) setupContextAndWg(parentCtx context.Context, errorCh chan error) (ctx context.Context, wg *sync.WaitGroup) {
	wg = &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(parentCtx)

	go func() {
		select {
		case <-ctx.Done():
			return
		case err := <-errorCh:
			if err == nil {
				slog.Error("service stopped unexpectedly")
			} else {
				slog.Error(fmt.Sprintf("stopping due to error: %+v", err))
			}
			closer.Close()
		}
	}()

	closer.Bind(func() {
		var res error
		for err := range errorCh {
			if err == nil {
				continue
			}
			if res == nil {
				res = fmt.Errorf("%+v", err)
			}
			res = fmt.Errorf("%s\n%+v", res, err)
		}

		if res != nil {
			slog.Error(fmt.Sprintf("App shutdown errors:\n%+v", res))
		}
	})
	closer.Bind(func() {
		go func() {
			wg.Wait()
			close(errorCh)
		}()
	})
	closer.Bind(cancel)

	return
}

func (a App) setupHandlers(cfg *config.Config, runners []*bot_runner.Service, repo repository.Repository) *handlers.Handlers {
	h := &handlers.Handlers{Telegram: make(map[string]handlers.Handler)}
	if cfg.HttpServer.MetricsAuthToken != "" {
		h.Metrics = metrics_handler.New(cfg.HttpServer.MetricsAuthToken)
	}
	if a.params.Debug {
		h.Debug = debug_handler.New(repo)
	}
	for _, runner := range runners {
		if !runner.Config().Webhook() {
			continue
		}
		h.Telegram[runner.Name()] = telegram_bot_handler.New(
			runner.Name(), runner.Config().WebhookSecret, runner.Queue(), slog.Default(),
		)
	}
	return h
}

func getValidatedParams() (*Params, error) {
	params := &Params{}
	if err := flag.Commandline.ParseStruct(params); err != nil {
		return nil, err
	}

	stat, err := os.Stat(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() || (filepath.Ext(stat.Name()) != ".yaml" && filepath.Ext(stat.Name()) != ".yml") {
		return nil, fmt.Errorf("invalid config path: %s", params.ConfigPath)
	}

	return params, nil
}
