package exchangerate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"duobot/internal/clients"

	"github.com/valyala/fasthttp"
)

const defaultBaseUrl = "https://v6.exchangerate-api.com/v6"

var ErrUnknownCurrency = errors.New("unknown currency")

// Rates holds how many units of each currency one unit of Base buys.
type Rates struct {
	Base   string
	Values map[string]float64
}

// Cross returns how many units of to one unit of from buys.
func (r Rates) Cross(from, to string) (float64, error) {
	fromRate, err := r.rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := r.rate(to)
	if err != nil {
		return 0, err
	}
	return toRate / fromRate, nil
}

func (r Rates) rate(code string) (float64, error) {
	code = strings.ToUpper(code)
	if code == strings.ToUpper(r.Base) {
		return 1, nil
	}
	v, ok := r.Values[code]
	if !ok || v <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return v, nil
}

type Client struct {
	baseUrl string
	apiKey  string
	caller  *clients.Caller
}

func New(cfg *clients.Config, httpClient *fasthttp.Client) *Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		apiKey:  cfg.Token,
		caller:  clients.NewCaller("exchangerate", cfg.Timeout, httpClient),
	}
}

type latestDto struct {
	Result          string             `json:"result" validate:"eq=success"`
	BaseCode        string             `json:"base_code" validate:"required"`
	ConversionRates map[string]float64 `json:"conversion_rates" validate:"required"`
}

func (c *Client) Latest(ctx context.Context, base string) (Rates, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(fmt.Sprintf("%s/%s/latest/%s", c.baseUrl, c.apiKey, strings.ToUpper(base)))
	req.Header.SetMethod(fasthttp.MethodGet)

	dto := &latestDto{}
	if err := c.caller.DoJSON(ctx, req, dto); err != nil {
		return Rates{}, err
	}
	return Rates{Base: dto.BaseCode, Values: dto.ConversionRates}, nil
}
