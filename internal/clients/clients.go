// Package clients holds the plumbing shared by the third-party API clients.
package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"duobot/internal/metrics"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout = 10 * time.Second
	maxRedirects   = 5
	// MaxResponseBodySize caps every response read by a default client.
	MaxResponseBodySize = 20 << 20
)

// ErrServiceUnavailable wraps every network, status or payload failure of a third-party API.
var ErrServiceUnavailable = errors.New("external service unavailable")

var validate = validator.New()

type Config struct {
	BaseUrl string        `yaml:"base_url" validate:"omitempty,url"`
	Token   string        `yaml:"token" validate:"required"`
	Timeout time.Duration `yaml:"timeout"`
}

// Caller performs requests for one named service.
type Caller struct {
	Name    string
	Client  *fasthttp.Client
	Timeout time.Duration
}

func NewCaller(name string, timeout time.Duration, client *fasthttp.Client) *Caller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &fasthttp.Client{
			Name:                "duobot",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: MaxResponseBodySize,
		}
	}
	return &Caller{Name: name, Client: client, Timeout: timeout}
}

// DoJSON sends req and decodes a 200 response into out, which must be a struct pointer.
func (c *Caller) DoJSON(ctx context.Context, req *fasthttp.Request, out any) error {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.do(ctx, req, resp); err != nil {
		return err
	}
	if err := jsoniter.Unmarshal(resp.Body(), out); err != nil {
		return c.fail(fmt.Errorf("json unmarshal error: %w", err))
	}
	if err := validate.Struct(out); err != nil {
		return c.fail(fmt.Errorf("validation error: %w", err))
	}
	return nil
}

// Download fetches url following redirects and returns the body. The whole
// chain of requests shares one deadline.
func (c *Caller) Download(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, c.fail(err)
	}
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	deadline := c.deadline(ctx)
	for redirects := 0; ; redirects++ {
		if err := c.Client.DoDeadline(req, resp, deadline); err != nil {
			return nil, c.fail(err)
		}
		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) {
			break
		}
		if redirects >= maxRedirects {
			return nil, c.fail(fasthttp.ErrTooManyRedirects)
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return nil, c.fail(fasthttp.ErrMissingLocation)
		}
		req.URI().UpdateBytes(location)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, c.fail(fmt.Errorf("unexpected status %d", code))
	}
	return append([]byte(nil), resp.Body()...), nil
}

func (c *Caller) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return c.fail(err)
	}
	if err := c.Client.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return c.fail(err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return c.fail(fmt.Errorf("unexpected status %d", code))
	}
	return nil
}

// deadline is the earlier of the ctx deadline and the caller timeout.
func (c *Caller) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

func (c *Caller) fail(err error) error {
	metrics.ExternalFailures.With(prometheus.Labels{"service": c.Name}).Inc()
	return fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, c.Name, err)
}
