// Package provider implements a ScreenshotOne client: capture URLs are self-contained and
// dereferencing them renders the page on the provider side.
package provider

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/provider"
)

// Fixed rendering options; timeout is the provider-side budget in seconds.
const (
	DeviceScaleFactor = "2"
	Format            = "png"
	Delay             = "3"
	Timeout           = "30"
)

// Check interface implementation explicitly
var (
	_ provider.Provider = (*Client)(nil)
)

// Client struct defines data structure handling and provides support for adding new implementations.
type Client struct {
	apiKey  string
	baseURL string
	client  *resty.Client
}

// InitClient initializes a Client object from the provider-related part of the configuration.
func InitClient(cfg *config.Config) *Client {
	client := resty.New().
		SetTimeout(cfg.ProviderTimeout).
		SetHeader("Accept", "image/png")
	return &Client{
		apiKey:  cfg.ProviderAPIKey,
		baseURL: cfg.ProviderBaseURL,
		client:  client,
	}
}

// BuildURL composes the capture URL carrying the credential and the rendering options.
func (c *Client) BuildURL(p provider.Params) (string, error) {
	if c.apiKey == "" {
		return "", &serviceErrors.ConfigurationError{Msg: "ScreenshotOne API key not configured"}
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", &serviceErrors.ConfigurationError{Msg: "invalid provider base URL: " + err.Error()}
	}
	width, height := provider.Viewport(p.DeviceType)
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("url", p.URL)
	q.Set("viewport_width", strconv.Itoa(width))
	q.Set("viewport_height", strconv.Itoa(height))
	q.Set("device_scale_factor", DeviceScaleFactor)
	q.Set("format", Format)
	q.Set("block_ads", "true")
	q.Set("block_cookie_banners", "true")
	q.Set("delay", Delay)
	q.Set("timeout", Timeout)
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// Take dereferences the capture URL once to make sure the provider renders the page.
// The image itself is discarded.
func (c *Client) Take(ctx context.Context, captureURL string) error {
	resp, err := c.get(ctx, captureURL)
	if err != nil {
		return err
	}
	defer resp.RawBody().Close()
	_, _ = io.Copy(io.Discard, resp.RawBody())
	log.Println("Provider: capture succeeded with status", resp.StatusCode())
	return nil
}

// Fetch streams the image behind the capture URL.
func (c *Client) Fetch(ctx context.Context, captureURL string) (*provider.Artifact, error) {
	resp, err := c.get(ctx, captureURL)
	if err != nil {
		return nil, err
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return &provider.Artifact{
		Body:        resp.RawBody(),
		ContentType: contentType,
		Size:        resp.RawResponse.ContentLength,
	}, nil
}

// get issues the request without buffering the body; on success the caller owns resp.RawBody().
func (c *Client) get(ctx context.Context, captureURL string) (*resty.Response, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(captureURL)
	if err != nil {
		log.Println("Provider:", err)
		return nil, &serviceErrors.UpstreamError{Msg: err.Error(), Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		resp.RawBody().Close()
		log.Println("Provider: unexpected status", resp.StatusCode())
		return nil, &serviceErrors.UpstreamError{Status: resp.StatusCode(), Msg: http.StatusText(resp.StatusCode())}
	}
	return resp, nil
}
