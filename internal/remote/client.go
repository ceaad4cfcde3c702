// Package remote is the typed client for the retail service. It owns wire
// encoding, token and correlation-id attachment, and the classification of
// transport and HTTP failures into fault kinds.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/fault"
	"github.com/luniksss/lunikiss-storefront/internal/middleware"
)

type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(name, baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	return &Client{name: name, baseURL: u, http: httpClient, log: log}
}

// do issues one request and decodes a 2xx JSON response into out (skipped
// when out is nil). Non-2xx responses and transport failures come back as
// remote faults.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.name, err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.name, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Propagate the caller's identity and correlation id downstream.
	if sess := middleware.GetSession(ctx); sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fault.Wrap(fault.KindRemote, fault.CodeRemoteUnavailable, c.name+" unreachable", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(c.name, resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fault.Wrap(fault.KindRemote, fault.CodeRemoteRejected, "decode "+c.name+" response", err)
	}
	return nil
}

func classifyStatus(name string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fault.Newf(fault.KindRemote, fault.CodeNotFound, "%s: not found", name)
	case resp.StatusCode >= 500:
		return fault.Newf(fault.KindRemote, fault.CodeRemoteUnavailable, "%s returned status %d", name, resp.StatusCode)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fault.Newf(fault.KindRemote, fault.CodeRemoteRejected,
			"%s rejected the request with status %d: %s", name, resp.StatusCode, bytes.TrimSpace(msg))
	}
}
