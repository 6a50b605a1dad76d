package unsplash

import (
	"context"
	"fmt"
	"strings"

	"duobot/internal/clients"
	"duobot/internal/entities"

	"github.com/valyala/fasthttp"
)

const defaultBaseUrl = "https://api.unsplash.com"

type Client struct {
	baseUrl   string
	accessKey string
	caller    *clients.Caller
}

// New builds the client; a nil httpClient selects a default one.
func New(cfg *clients.Config, httpClient *fasthttp.Client) *Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	return &Client{
		baseUrl:   strings.TrimRight(baseUrl, "/"),
		accessKey: cfg.Token,
		caller:    clients.NewCaller("unsplash", cfg.Timeout, httpClient),
	}
}

type randomPhotoDto struct {
	Urls struct {
		Regular string `json:"regular" validate:"required,url"`
	} `json:"urls"`
	AltDescription *string `json:"alt_description"`
}

// RandomPhoto returns a random photo matching query with its lower-cased description.
func (c *Client) RandomPhoto(ctx context.Context, query string) (entities.Photo, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	uri := fasthttp.AcquireURI()
	defer fasthttp.ReleaseURI(uri)
	if err := uri.Parse(nil, []byte(c.baseUrl+"/photos/random")); err != nil {
		return entities.Photo{}, fmt.Errorf("invalid base url: %w", err)
	}
	uri.QueryArgs().Set("query", query)
	req.SetURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set(fasthttp.HeaderAuthorization, "Client-ID "+c.accessKey)

	dto := &randomPhotoDto{}
	if err := c.caller.DoJSON(ctx, req, dto); err != nil {
		return entities.Photo{}, err
	}

	description := "unknown " + query
	if dto.AltDescription != nil && strings.TrimSpace(*dto.AltDescription) != "" {
		description = *dto.AltDescription
	}
	return entities.Photo{
		Url:         dto.Urls.Regular,
		Description: strings.ToLower(description),
	}, nil
}

func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	return c.caller.Download(ctx, url)
}
