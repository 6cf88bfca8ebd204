package cli

import (
	"context"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/client/services"
	"github.com/dmitrijs2005/clinicadmin/internal/listing"
)

// view is a services.Directory with its record type erased, so one set of
// commands serves every resource.
type view interface {
	Header() []string
	Browse(ctx context.Context, c listing.Criteria, pageNumber, pageSize int) (listing.Page[models.Row], error)
	Get(ctx context.Context, id string) (models.Row, error)
	Create(ctx context.Context, fields map[string]any) (models.Row, error)
	Update(ctx context.Context, id string, changes map[string]any) (models.Row, error)
	Delete(ctx context.Context, id string) error
}

type row interface {
	listing.Listable
	models.Row
}

type directoryView[T row] struct {
	dir *services.Directory[T]
}

func newView[T row](a *App, e client.Endpoint) view {
	res := client.NewResource[T](a.transport, e)
	return &directoryView[T]{dir: services.NewDirectory[T](res, a.session, a.log, a.config.FetchLimit)}
}

// viewFor resolves a resource name to its view. Resources with a dedicated
// model get typed rows, the simple lookup tables use models.Record.
func (a *App) viewFor(name string) (view, error) {
	e, err := client.Lookup(name)
	if err != nil {
		return nil, err
	}

	switch e.Name {
	case "patients":
		return newView[models.Patient](a, e), nil
	case "staff":
		return newView[models.StaffMember](a, e), nil
	case "therapists":
		return newView[models.Therapist](a, e), nil
	case "team-members":
		return newView[models.TeamMember](a, e), nil
	case "branches":
		return newView[models.Branch](a, e), nil
	case "chat-bot-history":
		return newView[models.ChatHistory](a, e), nil
	default:
		return newView[models.Record](a, e), nil
	}
}

func (v *directoryView[T]) Header() []string {
	var zero T
	return zero.Header()
}

func (v *directoryView[T]) Browse(ctx context.Context, c listing.Criteria, pageNumber, pageSize int) (listing.Page[models.Row], error) {
	page, err := v.dir.Browse(ctx, c, pageNumber, pageSize)
	rows := make([]models.Row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, item)
	}
	return listing.Page[models.Row]{
		Items:      rows,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}, err
}

func (v *directoryView[T]) Get(ctx context.Context, id string) (models.Row, error) {
	return v.dir.Get(ctx, id)
}

func (v *directoryView[T]) Create(ctx context.Context, fields map[string]any) (models.Row, error) {
	return v.dir.Create(ctx, fields)
}

func (v *directoryView[T]) Update(ctx context.Context, id string, changes map[string]any) (models.Row, error) {
	return v.dir.Update(ctx, id, changes)
}

func (v *directoryView[T]) Delete(ctx context.Context, id string) error {
	return v.dir.Delete(ctx, id)
}
