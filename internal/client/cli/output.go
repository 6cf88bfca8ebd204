package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
	"github.com/dmitrijs2005/clinicadmin/internal/listing"
)

const noData = "No data found"

func (a *App) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// printPage renders one page as a table with a "Page N of M" footer.
func (a *App) printPage(header []string, page listing.Page[models.Row]) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	if len(page.Items) == 0 {
		fmt.Fprintln(w, noData)
	}
	for _, r := range page.Items {
		fmt.Fprintln(w, strings.Join(r.Values(), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(a.out, "\nPage %d of %d (%d records)\n", page.PageNumber, page.TotalPages, page.TotalCount)
	return err
}

// printRow renders one record as aligned "FIELD  value" lines.
func (a *App) printRow(r models.Row) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	values := r.Values()
	for i, h := range r.Header() {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		fmt.Fprintf(w, "%s:\t%s\n", h, v)
	}
	return w.Flush()
}

// Describe turns an error into the text of a notification.
func Describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNoToken):
		return "not logged in, run login first"
	case errors.Is(err, client.ErrUnauthorized):
		return err.Error() + ", log in again"
	case errors.Is(err, common.ErrDecrypt):
		return "could not decrypt the response, check the payload secret"
	default:
		return err.Error()
	}
}
