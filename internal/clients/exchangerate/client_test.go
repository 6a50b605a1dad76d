package exchangerate

import (
	"context"
	"testing"

	"duobot/internal/clients"
	"duobot/internal/clients/clientstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestLatest(t *testing.T) {
	var gotPath string
	client := clientstest.NewClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		ctx.SetBodyString(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"RUB":90.0,"EUR":0.92}}`)
	})
	c := New(&clients.Config{BaseUrl: "http://rates.test/v6", Token: "key"}, client)

	rates, err := c.Latest(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, "/v6/key/latest/USD", gotPath)
	assert.Equal(t, "USD", rates.Base)
	assert.Equal(t, 90.0, rates.Values["RUB"])
}

func TestLatestErrorResult(t *testing.T) {
	client := clientstest.NewClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"result":"error","error-type":"invalid-key"}`)
	})
	c := New(&clients.Config{BaseUrl: "http://rates.test/v6", Token: "bad"}, client)

	_, err := c.Latest(context.Background(), "USD")

	assert.ErrorIs(t, err, clients.ErrServiceUnavailable)
}

func TestCross(t *testing.T) {
	rates := Rates{Base: "USD", Values: map[string]float64{"RUB": 90.0, "EUR": 0.92}}

	eurRub, err := rates.Cross("EUR", "RUB")
	require.NoError(t, err)
	assert.InDelta(t, 97.826, eurRub, 0.001)

	usdRub, err := rates.Cross("usd", "RUB")
	require.NoError(t, err)
	assert.Equal(t, 90.0, usdRub)

	_, err = rates.Cross("GBP", "RUB")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}
