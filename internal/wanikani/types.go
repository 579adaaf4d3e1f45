package wanikani

import "encoding/json"

// Pages is the pagination block of a collection response.
type Pages struct {
	PerPage     int     `json:"per_page"`
	NextURL     *string `json:"next_url"`
	PreviousURL *string `json:"previous_url"`
}

// Response is the decoded envelope shared by every WaniKani endpoint. Error
// responses populate Code and Error instead of Data.
type Response struct {
	Object        string          `json:"object"`
	URL           string          `json:"url"`
	Pages         *Pages          `json:"pages"`
	TotalCount    int             `json:"total_count"`
	DataUpdatedAt *string         `json:"data_updated_at"`
	Data          json.RawMessage `json:"data"`

	Code  int    `json:"code"`
	Error string `json:"error"`
}

// IsError reports whether the envelope is an error body.
func (r *Response) IsError() bool {
	return r.Code != 0 || r.Error != ""
}

// NextURL is the following page, or "" on the last page.
func (r *Response) NextURL() string {
	if r.Pages == nil || r.Pages.NextURL == nil {
		return ""
	}
	return *r.Pages.NextURL
}

type resource[T any] struct {
	ID     int    `json:"id"`
	Object string `json:"object"`
	Data   T      `json:"data"`
}

type userData struct {
	Username   string  `json:"username"`
	Level      int     `json:"level"`
	ProfileURL string  `json:"profile_url"`
	StartedAt  *string `json:"started_at"`
}
