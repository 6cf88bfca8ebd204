package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/listing"
	"github.com/spf13/cobra"
)

var errNoFields = errors.New("no fields given")

type listOptions struct {
	branch   string
	search   string
	from     string
	to       string
	keyword  string
	page     int
	size     int
	jsonMode bool
}

// criteria builds the filter. Explicit --from/--to win over --range; an
// unknown range keyword means no date filter.
func (o listOptions) criteria(ctx context.Context, a *App, t time.Time) (listing.Criteria, error) {
	c := listing.Criteria{Branch: o.branch, SearchTerm: o.search}

	r, err := listing.DayRange(o.from, o.to)
	if err != nil {
		return c, err
	}
	if r != nil {
		c.DateRange = r
		return c, nil
	}

	if o.keyword != "" {
		dr, ok := listing.ResolveRange(o.keyword, t)
		if !ok {
			a.log.Warn(ctx, "unknown date range ignored", "range", o.keyword)
			return c, nil
		}
		c.DateRange = &dr
	}
	return c, nil
}

func (a *App) listCommand() *cobra.Command {
	var o listOptions

	cmd := &cobra.Command{
		Use:     "list <resource>",
		Short:   "List records with filters and paging",
		GroupID: "records",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viewFor(args[0])
			if err != nil {
				return err
			}
			c, err := o.criteria(cmd.Context(), a, now())
			if err != nil {
				return err
			}

			page, browseErr := v.Browse(cmd.Context(), c, o.page, o.size)
			if o.jsonMode {
				err = a.printJSON(page)
			} else {
				err = a.printPage(v.Header(), page)
			}
			if browseErr != nil {
				return browseErr
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.branch, "branch", "", `branch or location ("all" for every branch)`)
	f.StringVar(&o.search, "search", "", "case-insensitive match on name, email or phone")
	f.StringVar(&o.from, "from", "", "first day, YYYY-MM-DD (needs --to)")
	f.StringVar(&o.to, "to", "", "last day, YYYY-MM-DD (needs --from)")
	f.StringVar(&o.keyword, "range", "", "date range keyword: "+strings.Join(listing.RangeKeywords, ", "))
	f.IntVar(&o.page, "page", 1, "page number")
	f.IntVar(&o.size, "size", a.config.PageSize, "rows per page")
	f.BoolVar(&o.jsonMode, "json", false, "print JSON")
	return cmd
}

func (a *App) showCommand() *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:     "show <resource> <id>",
		Short:   "Show one record",
		GroupID: "records",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viewFor(args[0])
			if err != nil {
				return err
			}
			r, err := v.Get(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if jsonMode {
				return a.printJSON(r)
			}
			return a.printRow(r)
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "print JSON")
	return cmd
}

// assignments parses name=value arguments, prompting for them when none
// were given.
func (a *App) assignments(args []string) (map[string]any, error) {
	if len(args) == 0 {
		lines, err := GetAssignments(a.reader, a.out)
		if err != nil {
			return nil, err
		}
		args = lines
	}
	fields, err := models.ParseAssignments(args)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoFields
	}
	return fields, nil
}

func (a *App) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create <resource> [name=value...]",
		Short:   "Create a record",
		GroupID: "records",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viewFor(args[0])
			if err != nil {
				return err
			}
			fields, err := a.assignments(args[1:])
			if err != nil {
				return err
			}
			r, err := v.Create(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, strings.TrimSpace("Created "+r.RowID()))
			return nil
		},
	}
}

func (a *App) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "update <resource> <id> [name=value...]",
		Short:   "Update a record, keeping fields not given",
		GroupID: "records",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viewFor(args[0])
			if err != nil {
				return err
			}
			changes, err := a.assignments(args[2:])
			if err != nil {
				return err
			}
			if _, err := v.Update(cmd.Context(), args[1], changes); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Updated "+args[1])
			return nil
		},
	}
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <resource> <id>",
		Short:   "Delete a record",
		GroupID: "records",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viewFor(args[0])
			if err != nil {
				return err
			}
			if err := v.Delete(cmd.Context(), args[1]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Deleted "+args[1])
			return nil
		},
	}
}

func (a *App) resourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "resources",
		Short:   "List the resources the console manages",
		GroupID: "records",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tTOKEN\tENCRYPTED")
			for _, name := range client.EndpointNames() {
				e := client.Endpoints[name]
				encrypted := "no"
				if e.EncryptedWrites {
					encrypted = "writes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Path, e.Realm.TokenKey(), encrypted)
			}
			return w.Flush()
		},
	}
}
