package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListResearch calls GET /research with the given filters.
func (c *Client) ListResearch(ctx context.Context, p ResearchParams) (Result[ResearchPaper], error) {
	body, err := c.get(ctx, "/research", listQuery("journal", p.Journal, p.Search, p.Limit, p.Page))
	if err != nil {
		return Result[ResearchPaper]{}, err
	}
	return decodeList[ResearchPaper](body, "/research")
}

func (c *Client) Research(ctx context.Context, id string) (ResearchPaper, error) {
	var r ResearchPaper
	path := "/research/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, nil, &r); err != nil {
		return ResearchPaper{}, err
	}
	if r.ID == "" {
		return ResearchPaper{}, fmt.Errorf("%w: decoding %s: missing id", ErrMalformed, path)
	}
	return r, nil
}

// Journals lists the journal names known to the server.
func (c *Client) Journals(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/research/journals/list", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeList[string](body, "/research/journals/list")
	return res.Items, err
}
