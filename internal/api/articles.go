package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListArticles calls GET /articles with the given filters.
func (c *Client) ListArticles(ctx context.Context, p ArticleParams) (Result[Article], error) {
	body, err := c.get(ctx, "/articles", listQuery("tag", p.Tag, p.Search, p.Limit, p.Page))
	if err != nil {
		return Result[Article]{}, err
	}
	return decodeList[Article](body, "/articles")
}

func (c *Client) FeaturedArticles(ctx context.Context) ([]Article, error) {
	body, err := c.get(ctx, "/articles/featured", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeList[Article](body, "/articles/featured")
	return res.Items, err
}

// Article fetches one article. A 404 matches ErrNotFound.
func (c *Client) Article(ctx context.Context, id string) (Article, error) {
	var a Article
	path := "/articles/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, nil, &a); err != nil {
		return Article{}, err
	}
	if a.ID == "" {
		return Article{}, fmt.Errorf("%w: decoding %s: missing id", ErrMalformed, path)
	}
	return a, nil
}

// RelatedArticles calls GET /articles/{id}/related?limit=n.
func (c *Client) RelatedArticles(ctx context.Context, id string, limit int) ([]Article, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/articles/" + url.PathEscape(id) + "/related"
	body, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	res, err := decodeList[Article](body, path)
	return res.Items, err
}
