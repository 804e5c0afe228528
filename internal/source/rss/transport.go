package rss

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Transport retrieves the raw feed document for a feed URL, possibly
// through a relay.
type Transport interface {
	Name() string
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

const (
	KindAllOrigins = "allorigins"
	KindRaw        = "raw"
	KindDirect     = "direct"
)

var errEmptyPayload = errors.New("empty payload")

// NewTransport builds a transport from its configured kind.
func NewTransport(kind, relayURL string, client *http.Client, maxBodySize int64) (Transport, error) {
	base := httpGetter{client: client, maxBodySize: maxBodySize}

	switch kind {
	case KindAllOrigins:
		return &AllOriginsTransport{httpGetter: base, relayURL: relayURL}, nil
	case KindRaw:
		return &RawRelayTransport{httpGetter: base, relayURL: relayURL}, nil
	case KindDirect:
		return &DirectTransport{httpGetter: base}, nil
	default:
		return nil, fmt.Errorf("unknown relay kind %q", kind)
	}
}

// AllOriginsTransport calls a relay that wraps the document in a JSON
// envelope: {"contents": "<feed xml>"}.
type AllOriginsTransport struct {
	httpGetter
	relayURL string
}

func (t *AllOriginsTransport) Name() string { return KindAllOrigins }

func (t *AllOriginsTransport) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	body, err := t.get(ctx, t.relayURL+url.QueryEscape(feedURL), "application/json")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Contents == "" {
		return nil, errEmptyPayload
	}
	return []byte(envelope.Contents), nil
}

// RawRelayTransport calls a prefix relay that returns the document as-is.
type RawRelayTransport struct {
	httpGetter
	relayURL string
}

func (t *RawRelayTransport) Name() string { return KindRaw }

func (t *RawRelayTransport) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	return t.get(ctx, t.relayURL+url.QueryEscape(feedURL), feedAccept)
}

// DirectTransport fetches the feed without any relay.
type DirectTransport struct {
	httpGetter
}

func (t *DirectTransport) Name() string { return KindDirect }

func (t *DirectTransport) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	return t.get(ctx, feedURL, feedAccept)
}

const feedAccept = "application/atom+xml, application/xml, text/xml, */*"

type httpGetter struct {
	client      *http.Client
	maxBodySize int64
}

func (g httpGetter) get(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "SafeTube/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return nil, errEmptyPayload
	}
	return body, nil
}
