package dadata

import (
	"context"
	"strings"

	"duobot/internal/clients"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

const defaultBaseUrl = "https://suggestions.dadata.ru/suggestions/api/4_1/rs"

type Client struct {
	baseUrl string
	token   string
	caller  *clients.Caller
}

func New(cfg *clients.Config, httpClient *fasthttp.Client) *Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		token:   cfg.Token,
		caller:  clients.NewCaller("dadata", cfg.Timeout, httpClient),
	}
}

type suggestRequestDto struct {
	Query string `json:"query"`
}

type suggestResponseDto struct {
	Suggestions []struct {
		Value string `json:"value"`
	} `json:"suggestions" validate:"required"`
}

// BrandExists reports whether the car brand directory has any suggestion for term.
func (c *Client) BrandExists(ctx context.Context, term string) (bool, error) {
	body, err := jsoniter.Marshal(&suggestRequestDto{Query: term})
	if err != nil {
		return false, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseUrl + "/suggest/car_brand")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(fasthttp.HeaderAuthorization, "Token "+c.token)
	req.SetBody(body)

	dto := &suggestResponseDto{}
	if err = c.caller.DoJSON(ctx, req, dto); err != nil {
		return false, err
	}
	return len(dto.Suggestions) > 0, nil
}
