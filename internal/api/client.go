package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dentalink/dentalink/internal/config"
	"github.com/dentalink/dentalink/internal/debuglog"
)

const maxBodyBytes = 16 << 20

// Client talks to the content API under {base}/api. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	http      *http.Client
	base      string
	userAgent string
}

func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		base:      strings.TrimRight(cfg.BaseURL, "/") + "/api",
		userAgent: cfg.UserAgent,
	}
}

// BaseURL returns the API root including the /api prefix.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + encodeQuery(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := debuglog.WithFields(map[string]any{"path": path, "query": encodeQuery(query)})
	log.Debugf("GET %s", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warnf("request failed: %v", err)
		return nil, fmt.Errorf("%w: GET %s: %w", ErrNetwork, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warnf("reading body failed: %v", err)
		return nil, fmt.Errorf("%w: reading %s: %w", ErrNetwork, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("unexpected status %d", resp.StatusCode)
		return nil, &StatusError{Status: resp.StatusCode, Path: path}
	}

	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrMalformed, path, err)
	}
	return nil
}

type envelope[T any] struct {
	Data       []T `json:"data"`
	Pagination *struct {
		Total *int `json:"total"`
	} `json:"pagination"`
}

// decodeList accepts either {data, pagination} or a bare array. An empty
// body, null or {} is an empty list; any other object must carry data.
// Total falls back to the item count when the server omits it.
func decodeList[T any](body []byte, path string) (Result[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Result[T]{Items: []T{}}, nil
	}

	var res Result[T]
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &res.Items); err != nil {
			return Result[T]{}, fmt.Errorf("%w: decoding %s: %w", ErrMalformed, path, err)
		}
		res.Total = len(res.Items)
	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return Result[T]{}, fmt.Errorf("%w: decoding %s: %w", ErrMalformed, path, err)
		}
		if len(keys) == 0 {
			return Result[T]{Items: []T{}}, nil
		}
		if _, ok := keys["data"]; !ok {
			return Result[T]{}, fmt.Errorf("%w: decoding %s: object without data", ErrMalformed, path)
		}
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Result[T]{}, fmt.Errorf("%w: decoding %s: %w", ErrMalformed, path, err)
		}
		res.Items = env.Data
		res.Total = len(env.Data)
		if env.Pagination != nil && env.Pagination.Total != nil && *env.Pagination.Total >= len(env.Data) {
			res.Total = *env.Pagination.Total
		}
	default:
		return Result[T]{}, fmt.Errorf("%w: decoding %s: unexpected body", ErrMalformed, path)
	}

	if res.Items == nil {
		res.Items = []T{}
	}
	return res, nil
}

func listQuery(filterKey, filter, search string, limit, page int) url.Values {
	q := url.Values{}
	if filter != "" {
		q.Set(filterKey, filter)
	}
	if search != "" {
		q.Set("search", search)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// encodeQuery percent-encodes spaces as %20. Encode already escapes a
// literal "+" as %2B, so every remaining "+" is a space.
func encodeQuery(q url.Values) string {
	return strings.ReplaceAll(q.Encode(), "+", "%20")
}
