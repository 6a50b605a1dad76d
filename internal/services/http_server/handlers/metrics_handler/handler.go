package metrics_handler

import (
	"duobot/internal/services/http_server/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type metricsHandler struct {
	handler fasthttp.RequestHandler
}

func New(token string) handlers.Handler {
	return &metricsHandler{
		handler: handlers.BearerTokenAuth(token, fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())),
	}
}

func (h *metricsHandler) Handle(ctx *fasthttp.RequestCtx) {
	h.handler(ctx)
}
