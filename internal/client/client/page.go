package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/clinicadmin/internal/listing"
)

// pageEnvelope covers every list shape observed from the backend.
type pageEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Elements   json.RawMessage `json:"elements"`
	Items      json.RawMessage `json:"items"`
	TotalCount *int            `json:"totalCount"`
	Total      *int            `json:"total"`
	TotalPages *int            `json:"totalPages"`
	Page       *int            `json:"page"`
}

// DecodePage normalises a list response into a listing.Page. Accepted
// shapes:
//
//	[ ... ]
//	{"data": [ ... ], "totalCount": n}
//	{"elements": [ ... ], "totalCount": n, "totalPages": n, "page": n}
//
// and any of the object forms nested once under "data". Missing counts are
// derived from the items and the query.
func DecodePage[T any](raw []byte, q PageQuery) (listing.Page[T], error) {
	return decodePage[T](raw, q, 0)
}

func decodePage[T any](raw []byte, q PageQuery, depth int) (listing.Page[T], error) {
	raw = bytes.TrimSpace(raw)

	size := q.Limit
	if size < 1 {
		size = listing.DefaultPageSize
	}

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return listing.EmptyPage[T](size), nil
	}

	switch raw[0] {
	case '[':
		items, err := decodeItems[T](raw)
		if err != nil {
			return listing.Page[T]{}, err
		}
		return buildPage(items, q.Page, size, nil, nil), nil

	case '{':
		var env pageEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return listing.Page[T]{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}

		list := firstPresent(env.Elements, env.Items, env.Data)
		if list == nil {
			return listing.Page[T]{}, fmt.Errorf("%w: no data, elements or items", ErrBadEnvelope)
		}

		if list[0] == '{' && depth == 0 {
			return decodePage[T](list, q, depth+1)
		}

		items, err := decodeItems[T](list)
		if err != nil {
			return listing.Page[T]{}, err
		}

		total := env.TotalCount
		if total == nil {
			total = env.Total
		}
		page := q.Page
		if env.Page != nil {
			page = *env.Page
		}
		return buildPage(items, page, size, total, env.TotalPages), nil
	}

	return listing.Page[T]{}, fmt.Errorf("%w: unexpected %q", ErrBadEnvelope, raw[0])
}

func firstPresent(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		c = bytes.TrimSpace(c)
		if len(c) > 0 && !bytes.Equal(c, []byte("null")) {
			return c
		}
	}
	return nil
}

func decodeItems[T any](raw []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func buildPage[T any](items []T, page, size int, total, pages *int) listing.Page[T] {
	count := len(items)
	if total != nil && *total >= count {
		count = *total
	}

	totalPages := listing.TotalPages(count, size)
	if pages != nil && *pages >= 1 {
		totalPages = *pages
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return listing.Page[T]{
		Items:      items,
		PageNumber: page,
		PageSize:   max(size, len(items)),
		TotalCount: count,
		TotalPages: totalPages,
	}
}
