package api

import (
	"context"
	"net/url"

	"github.com/dentalink/dentalink/internal/debuglog"
)

// Author never fails: any error yields PlaceholderAuthor(name).
func (c *Client) Author(ctx context.Context, name string) Author {
	var a Author
	if err := c.getJSON(ctx, "/authors/"+url.PathEscape(name), nil, &a); err != nil {
		debuglog.WithFields(map[string]any{"author": name}).Infof("using placeholder author: %v", err)
		return PlaceholderAuthor(name)
	}
	if a.Name == "" {
		a.Name = name
	}
	return a
}
