package dadata

import (
	"context"
	"testing"

	"duobot/internal/clients"
	"duobot/internal/clients/clientstest"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestBrandExists(t *testing.T) {
	client := clientstest.NewClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/suggest/car_brand" || string(ctx.Request.Header.Peek("Authorization")) != "Token key" {
			ctx.SetStatusCode(fasthttp.StatusForbidden)
			return
		}
		req := &suggestRequestDto{}
		_ = jsoniter.Unmarshal(ctx.PostBody(), req)
		if req.Query == "bmw" {
			ctx.SetBodyString(`{"suggestions":[{"value":"BMW"}]}`)
			return
		}
		ctx.SetBodyString(`{"suggestions":[]}`)
	})
	c := New(&clients.Config{BaseUrl: "http://dadata.test", Token: "key"}, client)

	ok, err := c.BrandExists(context.Background(), "bmw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.BrandExists(context.Background(), "potato")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBrandExistsUnavailable(t *testing.T) {
	client := clientstest.NewClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
	})
	c := New(&clients.Config{BaseUrl: "http://dadata.test", Token: "key"}, client)

	_, err := c.BrandExists(context.Background(), "bmw")

	assert.ErrorIs(t, err, clients.ErrServiceUnavailable)
}
