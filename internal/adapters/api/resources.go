package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Page is a paginated list envelope.
type Page[T any] struct {
	Items []T  `json:"items"`
	Total *int `json:"total"`
	Page  int  `json:"page"`
	Size  int  `json:"size"`
}

// Count returns the reported total, or the number of items when the API omits it.
func (p Page[T]) Count() int {
	if p.Total != nil {
		return *p.Total
	}
	return len(p.Items)
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	if page <= 0 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func get[T any](ctx context.Context, c *Client, tokens Tokens, path string, q url.Values) (T, error) {
	var out T
	err := c.Do(ctx, tokens, http.MethodGet, path, nil, &out, RequestOptions{Query: q})
	return out, err
}

func send[T any](ctx context.Context, c *Client, tokens Tokens, method, path string, in any) (T, error) {
	var out T
	err := c.Do(ctx, tokens, method, path, in, &out, RequestOptions{})
	return out, err
}

func idPath(prefix string, id int) string {
	return prefix + "/" + strconv.Itoa(id)
}
