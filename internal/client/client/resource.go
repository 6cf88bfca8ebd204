package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/clinicadmin/internal/listing"
)

// Resource is a CRUD client for one endpoint, decoding records as T.
type Resource[T any] struct {
	transport Transport
	endpoint  Endpoint
}

func NewResource[T any](t Transport, e Endpoint) *Resource[T] {
	return &Resource[T]{transport: t, endpoint: e}
}

func (r *Resource[T]) Endpoint() Endpoint { return r.endpoint }

// List fetches one page as the backend pages it.
func (r *Resource[T]) List(ctx context.Context, q PageQuery) (listing.Page[T], error) {
	raw, err := r.transport.Do(ctx, Call{
		Method: http.MethodGet,
		Path:   r.endpoint.Path,
		Query:  q.Values(),
		Realm:  r.endpoint.Realm,
	})
	if err != nil {
		return listing.Page[T]{}, err
	}
	return DecodePage[T](raw, q)
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	item, _, err := r.GetFields(ctx, id)
	return item, err
}

// GetFields fetches one record and returns it both as T and as the raw
// field map the backend sent, including fields T does not declare.
func (r *Resource[T]) GetFields(ctx context.Context, id string) (T, map[string]any, error) {
	var zero T
	raw, err := r.transport.Do(ctx, Call{
		Method: http.MethodGet,
		Path:   r.itemPath(id),
		Realm:  r.endpoint.Realm,
	})
	if err != nil {
		return zero, nil, err
	}

	item, err := decodeOne[T](raw)
	if err != nil {
		return zero, nil, err
	}
	fields, err := decodeOne[map[string]any](raw)
	if err != nil {
		return zero, nil, err
	}
	return item, fields, nil
}

// Create posts v, encrypted when the endpoint requires it.
func (r *Resource[T]) Create(ctx context.Context, v any) (T, error) {
	return r.write(ctx, http.MethodPost, r.endpoint.Path, v)
}

func (r *Resource[T]) Update(ctx context.Context, id string, v any) (T, error) {
	return r.write(ctx, http.MethodPut, r.itemPath(id), v)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.transport.Do(ctx, Call{
		Method: http.MethodDelete,
		Path:   r.itemPath(id),
		Realm:  r.endpoint.Realm,
	})
	return err
}

func (r *Resource[T]) write(ctx context.Context, method, path string, v any) (T, error) {
	var zero T
	raw, err := r.transport.Do(ctx, Call{
		Method:    method,
		Path:      path,
		Body:      v,
		Realm:     r.endpoint.Realm,
		Encrypted: r.endpoint.EncryptedWrites,
	})
	if err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	return decodeOne[T](raw)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.endpoint.Path + "/" + url.PathEscape(id)
}

// decodeOne accepts a bare object or one wrapped as {"data": {...}}.
func decodeOne[T any](raw []byte) (T, error) {
	var out T

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &wrapped) == nil {
		if d := bytes.TrimSpace(wrapped.Data); len(d) > 0 && d[0] == '{' {
			raw = d
		}
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}
