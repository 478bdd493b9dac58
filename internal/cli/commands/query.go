package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/classview/internal/api"
	"github.com/conduit-lang/classview/internal/cli/ui"
	"github.com/conduit-lang/classview/runtime/query"
)

var (
	queryPage     int
	queryPageSize int
	queryFormat   string
)

// NewQueryCommand creates the query command
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [filter...]",
		Short: "List classes and structs matching filters",
		Long: `List the classes and structs matching every filter, classes first.

Each filter is key:value. A value starting with ! negates the clause, a
value starting with " must match exactly and one starting with . matches
case-sensitively. An argument without a key filters by name.

Keys:
  name          short name contains value
  extends       parent's full name contains value
  deepextends   the type or any ancestor has a name containing value
  namespace     namespace contains value
  has           functions, properties, repfunctions
  hasprop       has a property whose name contains value

Pages are numbered from 0.`,
		Example: `  # Every class and struct
  classview query

  # Direct subclasses of exactly Engine.Actor
  classview query 'extends:"Engine.Actor'

  # Replicating Actor descendants outside the Engine namespace
  classview query deepextends:Actor has:repfunctions 'namespace:!engine'

  # Second page as JSON
  classview query hasprop:health --page 1 --format json`,
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryPage, "page", 0, "Page to show, from 0")
	cmd.Flags().IntVar(&queryPageSize, "page-size", 0, "Results per page (default from config)")
	cmd.Flags().StringVar(&queryFormat, "format", formatTable, "Output format: json or table")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := validateFormat(queryFormat); err != nil {
		return err
	}

	cfg, snap, err := loadSnapshot(cmd)
	if err != nil {
		return err
	}

	size := queryPageSize
	if size <= 0 {
		size = cfg.Query.DefaultPageSize
	}
	if size > cfg.Query.MaxPageSize {
		fmt.Fprint(cmd.ErrOrStderr(), ui.QueryError(
			fmt.Sprintf("--page-size %d exceeds the maximum of %d", size, cfg.Query.MaxPageSize), noColor))
		return errReported
	}

	res, err := snap.Engine.Query(query.Request{Filters: args, Page: queryPage, PageSize: size})
	if err != nil {
		if query.IsValidationError(err) {
			fmt.Fprint(cmd.ErrOrStderr(), ui.QueryError(err.Error(), noColor))
			return errReported
		}
		return err
	}

	out := cmd.OutOrStdout()
	if queryFormat == formatJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(api.NewFilteredClassesResponse(res))
	}

	renderQueryTable(out, res, queryPage)
	return nil
}

func renderQueryTable(w io.Writer, res *query.Result, page int) {
	if len(res.Entities) == 0 {
		if res.ClassesMatched+res.StructsMatched == 0 {
			fmt.Fprintln(w, "No classes or structs match.")
		} else {
			fmt.Fprintf(w, "Page %d is past the last page (%s).\n", page, plural(res.TotalPages, "page", "pages"))
		}
		return
	}

	table := ui.NewTable(w, []string{"KIND", "NAME", "PARENT", "PROPS", "FUNCS"}, &ui.TableOptions{NoColor: noColor})
	for _, t := range res.Entities {
		table.AddRow(
			t.Kind.String(),
			t.FullName,
			orDash(t.Parent),
			strconv.Itoa(len(t.Properties)),
			strconv.Itoa(len(t.Functions)),
		)
	}
	table.Render()

	fmt.Fprintln(w)
	color.New(color.FgHiBlack).Fprintf(w, "%s, page %d of %d (%d total)\n",
		matchSummary(res), page+1, res.TotalPages, res.Total)
}

func matchSummary(res *query.Result) string {
	return fmt.Sprintf("%s and %s",
		plural(res.ClassesMatched, "class", "classes"),
		plural(res.StructsMatched, "struct", "structs"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
