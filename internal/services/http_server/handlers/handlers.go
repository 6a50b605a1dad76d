package handlers

import (
	"github.com/valyala/fasthttp"
)

type Handler interface {
	Handle(ctx *fasthttp.RequestCtx)
}

type Handlers struct {
	Metrics Handler
	Debug   Handler
	// Telegram maps a bot name to its webhook intake.
	Telegram map[string]Handler
}
