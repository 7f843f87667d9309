package wikipedia

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// GetSummary fetches the REST page summary for an exact title.
func (c *Client) GetSummary(ctx context.Context, title string) (*Summary, error) {
	return doGetJSON[Summary](ctx, c, c.restURL("page/summary", title), "summary/"+title)
}

// Search runs a full-text search and returns the hits in ranking order.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", query)

	result, err := doGetJSON[searchResponse](ctx, c, c.actionURL(q), "search/"+query)
	if err != nil {
		return nil, err
	}
	return result.Query.Search, nil
}

// GetPageImages fetches the lead image thumbnails for the given titles.
// Titles that do not exist come back as pages with Missing set.
func (c *Client) GetPageImages(ctx context.Context, titles ...string) ([]PageImage, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "pageimages")
	q.Set("piprop", "thumbnail")
	q.Set("pithumbsize", strconv.Itoa(c.thumbSize))
	q.Set("titles", strings.Join(titles, "|"))

	name := "pageimages"
	if len(titles) > 0 {
		name += "/" + titles[0]
	}
	result, err := doGetJSON[pageImagesResponse](ctx, c, c.actionURL(q), name)
	if err != nil {
		return nil, err
	}
	return result.Query.Pages, nil
}
