// Package clientstest serves fasthttp handlers in memory for client tests.
package clientstest

import (
	"net"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

// NewClient returns a fasthttp client whose every connection reaches handler.
func NewClient(t *testing.T, handler fasthttp.RequestHandler) *fasthttp.Client {
	t.Helper()
	listener := fasthttputil.NewInmemoryListener()
	go func() { _ = fasthttp.Serve(listener, handler) }()
	t.Cleanup(func() { _ = listener.Close() })

	return &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return listener.Dial()
		},
	}
}
