// Package paging implements the client-side walk over Bitbucket's paged
// REST collections. A pager produces one server page at a time; Collect
// draws raw items from it, normalizes and filters them, and enforces the
// caller's limit across page boundaries.
package paging

import "errors"

// DefaultPageSize is the page-size hint sent to the server when the caller
// did not bound the walk more tightly.
const DefaultPageSize = 25

// ErrNegativeLimit is returned when a caller supplies a negative limit.
// Negative limits are an input-contract violation, never silently clamped.
var ErrNegativeLimit = errors.New("pagination limit must not be negative")

// Page is one batch of values from a paged Bitbucket endpoint, matching
// the wire envelope of the v1 REST API.
type Page[T any] struct {
	Size          int  `json:"size"`
	Limit         int  `json:"limit"`
	Start         int  `json:"start"`
	IsLastPage    bool `json:"isLastPage"`
	NextPageStart *int `json:"nextPageStart,omitempty"`
	Values        []T  `json:"values"`
}

// PageFunc fetches one page of raw values beginning at the given start
// offset. The limit argument is a page-size hint; the server may return
// fewer or more values than requested, so Collect never assumes the
// transport pre-trims to the caller's limit.
type PageFunc[T any] func(start, limit int) (*Page[T], error)

// Options bound a collection walk. All drains every page regardless of
// Limit; otherwise at most Limit items are collected, and Limit zero
// yields an empty result without fetching any page.
type Options struct {
	Start int
	Limit int
	All   bool
}

// Collect walks the pager from opts.Start, normalizing each raw value and
// keeping those matching keep (a nil keep keeps everything). Filtered-out
// values never count toward the limit. Output order is server order; no
// reordering or deduplication happens here. Once the limit is satisfied no
// further pages are requested. Any pager failure is returned as-is and all
// partially collected items are discarded.
func Collect[T, R any](pager PageFunc[T], opts Options, normalize func(T) R, keep func(R) bool) ([]R, error) {
	if opts.Limit < 0 {
		return nil, ErrNegativeLimit
	}

	items := make([]R, 0)

	if !opts.All && opts.Limit == 0 {
		return items, nil
	}

	start := opts.Start

	for {
		hint := DefaultPageSize
		if !opts.All {
			if remaining := opts.Limit - len(items); remaining < hint {
				hint = remaining
			}
		}

		page, err := pager(start, hint)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Values {
			item := normalize(raw)
			if keep != nil && !keep(item) {
				continue
			}

			items = append(items, item)

			if !opts.All && len(items) >= opts.Limit {
				return items, nil
			}
		}

		if page.IsLastPage {
			break
		}

		if page.NextPageStart != nil {
			start = *page.NextPageStart
		} else if len(page.Values) > 0 {
			start += len(page.Values)
		} else {
			// A pager that is neither finished nor advancing would spin
			// forever; treat it as exhausted.
			break
		}
	}

	return items, nil
}
