package http_server

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"duobot/internal/services/http_server/handlers"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

const botNameKey = "bot"

type HttpServer struct {
	cfg      *Config
	handlers *handlers.Handlers
	l        *slog.Logger
}

func New(cfg *Config, h *handlers.Handlers, l *slog.Logger) *HttpServer {
	return &HttpServer{
		cfg:      cfg,
		handlers: h,
		l:        l.With("service", "HttpServer"),
	}
}

func (s *HttpServer) Run(ctx context.Context) error {
	r := router.New()
	if s.handlers.Metrics != nil {
		r.GET("/metrics", s.handlers.Metrics.Handle)
	}
	if s.handlers.Debug != nil {
		r.POST("/debug", s.handlers.Debug.Handle)
	}
	api := r.Group("/api")
	api.POST(fmt.Sprintf("/telegram/{%s}", botNameKey), s.telegramHandler)

	socketAddress := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	l, err := net.Listen("tcp", socketAddress)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		s.l.Info("stopping http server")
		_ = l.Close()
	}()

	s.l.Info("starting http server", "address", socketAddress)
	err = fasthttp.Serve(l, r.Handler)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *HttpServer) telegramHandler(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue(botNameKey).(string)
	h, ok := s.handlers.Telegram[name]
	if !ok {
		ctx.Error("unknown bot", fasthttp.StatusNotFound)
		return
	}
	h.Handle(ctx)
}
