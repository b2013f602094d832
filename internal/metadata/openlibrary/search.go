package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Search queries the search API for works matching the query.
// page is 1-based; limit caps the number of docs per page.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, wrapError("search", "", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	searchURL := c.baseURL + "/search.json?" + params.Encode()

	c.log.Debug("searching OpenLibrary",
		"query", query,
		"page", page,
		"limit", limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, wrapError("search", "", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapError("search", "", fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, wrapError("search", "",
			fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode))
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, wrapError("search", "", fmt.Errorf("%w: parse response: %v", ErrUnavailable, err))
	}

	c.log.Debug("OpenLibrary search results",
		"query", query,
		"num_found", searchResp.NumFound,
	)

	result := &SearchResult{
		NumFound: searchResp.NumFound,
		Start:    searchResp.Start,
		Docs:     make([]Doc, 0, len(searchResp.Docs)),
	}
	for i := range searchResp.Docs {
		d := &searchResp.Docs[i]
		doc := Doc{
			Key:              trimWorkKey(d.Key),
			Title:            d.Title,
			AuthorNames:      d.AuthorName,
			FirstPublishYear: d.FirstPublishYear,
			CoverID:          d.CoverI,
			ISBNs:            d.ISBN,
			PageCountMedian:  d.PagesMedian,
		}
		if d.CoverI != 0 {
			doc.CoverURL = c.CoverURL(d.CoverI)
		}
		result.Docs = append(result.Docs, doc)
	}
	return result, nil
}

// BuildAdvancedQuery assembles a fielded query string from individual
// criteria. Empty criteria are skipped; at least one must be non-empty.
func BuildAdvancedQuery(title, author, subject, isbn string) string {
	var parts []string
	if t := strings.TrimSpace(title); t != "" {
		parts = append(parts, "title:"+t)
	}
	if a := strings.TrimSpace(author); a != "" {
		parts = append(parts, "author:"+a)
	}
	if s := strings.TrimSpace(subject); s != "" {
		parts = append(parts, "subject:"+s)
	}
	if i := strings.TrimSpace(isbn); i != "" {
		parts = append(parts, "isbn:"+i)
	}
	return strings.Join(parts, " ")
}
