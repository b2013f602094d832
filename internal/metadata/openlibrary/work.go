package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
)

// FetchWork retrieves the detail record for one work.
// Returns ErrNotFound for unknown work IDs and ErrUnavailable for
// transport failures, server errors and malformed responses.
func (c *Client) FetchWork(ctx context.Context, workID string) (*WorkDetail, error) {
	if err := c.wait(ctx); err != nil {
		return nil, wrapError("fetchWork", workID, err)
	}

	workURL := c.baseURL + "/works/" + workID + ".json"

	c.log.Debug("fetching OpenLibrary work", "work_id", workID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, workURL, nil)
	if err != nil {
		return nil, wrapError("fetchWork", workID, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapError("fetchWork", workID, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, wrapError("fetchWork", workID, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, wrapError("fetchWork", workID,
			fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode))
	}

	var workResp workResponse
	if err := json.UnmarshalRead(resp.Body, &workResp); err != nil {
		return nil, wrapError("fetchWork", workID,
			fmt.Errorf("%w: parse response: %v", ErrUnavailable, err))
	}

	detail := &WorkDetail{
		Key:         trimWorkKey(workResp.Key),
		Title:       workResp.Title,
		Description: extractDescription(workResp.Description),
		Subjects:    workResp.Subjects,
		CoverIDs:    workResp.Covers,
	}
	if detail.Key == "" {
		detail.Key = workID
	}
	for _, a := range workResp.Authors {
		if a.Author.Key != "" {
			detail.AuthorKeys = append(detail.AuthorKeys, trimAuthorKey(a.Author.Key))
		}
	}
	if len(workResp.Covers) > 0 {
		detail.CoverURL = c.CoverURL(workResp.Covers[0])
	}
	return detail, nil
}

// extractDescription handles the two wire shapes of a work description:
// a plain string, or an object {"type": "/type/text", "value": "..."}.
func extractDescription(desc any) string {
	switch d := desc.(type) {
	case string:
		return d
	case map[string]any:
		if value, ok := d["value"].(string); ok {
			return value
		}
	}
	return ""
}
