package services

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/listing"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
)

// ResourceAPI is the slice of client.Resource a Directory needs.
type ResourceAPI[T any] interface {
	Endpoint() client.Endpoint
	List(ctx context.Context, q client.PageQuery) (listing.Page[T], error)
	GetFields(ctx context.Context, id string) (T, map[string]any, error)
	Create(ctx context.Context, v any) (T, error)
	Update(ctx context.Context, id string, v any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Directory is the controller behind one list view.
type Directory[T listing.Listable] struct {
	resource   ResourceAPI[T]
	session    session.Session
	log        logging.Logger
	fetchLimit int
}

func NewDirectory[T listing.Listable](r ResourceAPI[T], s session.Session, log logging.Logger, fetchLimit int) *Directory[T] {
	if fetchLimit < 1 {
		fetchLimit = 1000
	}
	return &Directory[T]{resource: r, session: s, log: log, fetchLimit: fetchLimit}
}

func (d *Directory[T]) Name() string { return d.resource.Endpoint().Name }

// FetchAll loads the whole collection with one large-page request.
func (d *Directory[T]) FetchAll(ctx context.Context) ([]T, error) {
	page, err := d.resource.List(ctx, client.PageQuery{Page: 1, Limit: d.fetchLimit})
	if err != nil {
		return nil, err
	}
	if page.TotalCount > len(page.Items) {
		d.log.Warn(ctx, "collection truncated by fetch limit",
			"resource", d.Name(), "fetched", len(page.Items), "total", page.TotalCount)
	}
	return page.Items, nil
}

// Browse returns the requested page of the filtered collection.
//
// A half-open date range is refused with common.ErrPartialDateRange. A
// missing token yields an empty page and no error. Any other failure yields
// an empty page together with the error, for the caller to report.
func (d *Directory[T]) Browse(ctx context.Context, c listing.Criteria, pageNumber, pageSize int) (listing.Page[T], error) {
	if err := c.Validate(); err != nil {
		return listing.EmptyPage[T](pageSize), err
	}

	all, err := d.FetchAll(ctx)
	switch {
	case errors.Is(err, client.ErrNoToken):
		return listing.EmptyPage[T](pageSize), nil
	case err != nil:
		d.log.Error(ctx, "list failed", "resource", d.Name(), "error", err)
		return listing.EmptyPage[T](pageSize), err
	}

	return listing.Select(all, c, pageNumber, pageSize), nil
}

// Get fetches one record and stashes it, as the backend sent it, for a
// following Update.
func (d *Directory[T]) Get(ctx context.Context, id string) (T, error) {
	item, _, err := d.get(ctx, id)
	return item, err
}

func (d *Directory[T]) get(ctx context.Context, id string) (T, map[string]any, error) {
	item, fields, err := d.resource.GetFields(ctx, id)
	if err != nil {
		return item, nil, err
	}
	if err := d.session.Stash(ctx, d.Name(), fields); err != nil {
		d.log.Warn(ctx, "could not stash record", "resource", d.Name(), "error", err)
	}
	return item, fields, nil
}

func (d *Directory[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	return d.resource.Create(ctx, fields)
}

// Update sends the stashed record for id with changes applied. The stash
// holds every field the backend returned, so a full-replace PUT keeps fields
// the record type does not model. Without a matching stash the record is
// fetched first.
func (d *Directory[T]) Update(ctx context.Context, id string, changes map[string]any) (T, error) {
	var zero T

	base, err := d.stashedFields(ctx, id)
	if err != nil {
		return zero, err
	}
	if base == nil {
		if _, base, err = d.get(ctx, id); err != nil {
			return zero, err
		}
	}

	merged := models.Record(base).Merge(changes)
	for _, k := range []string{"_id", "id"} {
		if _, ok := changes[k]; !ok {
			delete(merged, k)
		}
	}

	updated, err := d.resource.Update(ctx, id, map[string]any(merged))
	if err != nil {
		return zero, err
	}
	return updated, nil
}

func (d *Directory[T]) Delete(ctx context.Context, id string) error {
	return d.resource.Delete(ctx, id)
}

// stashedFields returns the stashed record as a field map when it is the
// record with id, and nil otherwise.
func (d *Directory[T]) stashedFields(ctx context.Context, id string) (map[string]any, error) {
	var fields map[string]any
	ok, err := d.session.Stashed(ctx, d.Name(), &fields)
	if err != nil {
		return nil, fmt.Errorf("reading stash: %w", err)
	}
	if !ok || models.Record(fields).ID() != id {
		return nil, nil
	}
	return maps.Clone(fields), nil
}
