package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/classview/internal/cli/ui"
	"github.com/conduit-lang/classview/runtime/catalog"
)

var (
	checkStrict bool
	checkFormat string
)

// CheckReport lists the integrity issues of one catalogue build.
type CheckReport struct {
	Stats           catalog.Stats            `json:"stats"`
	Duplicates      []catalog.Duplicate      `json:"duplicates"`
	DanglingParents []catalog.DanglingParent `json:"danglingParents"`
	Cycles          [][]string               `json:"cycles"`
	UnresolvedEnums []catalog.EnumRef        `json:"unresolvedEnums"`
}

// Issues returns the total number of problems found.
func (r *CheckReport) Issues() int {
	return len(r.Duplicates) + len(r.DanglingParents) + len(r.Cycles) + len(r.UnresolvedEnums)
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report catalogue integrity issues",
		Long: `Load the catalogue and report what did not fit together:

  • FullNames defined more than once (the later definition wins)
  • parents that name no class or struct
  • parent cycles
  • enum properties whose enum is missing

None of these stop the catalogue from being served. With --strict any
issue makes the command exit non-zero.`,
		Example: `  classview check
  classview check --strict
  classview check --format json`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when any issue is found")
	cmd.Flags().StringVar(&checkFormat, "format", formatTable, "Output format: json or table")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := validateFormat(checkFormat); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Duplicates must be reported, not fail the build.
	cfg.Snapshot.Strict = false

	snap, err := buildSnapshot(cmd, cfg)
	if err != nil {
		return err
	}

	report := NewCheckReport(snap.Registry)
	out := cmd.OutOrStdout()

	if checkFormat == formatJSON {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		renderCheckReport(out, report)
	}

	if checkStrict && report.Issues() > 0 {
		return errReported
	}
	return nil
}

// NewCheckReport collects the integrity issues of reg. Every list is
// non-nil.
func NewCheckReport(reg *catalog.Registry) *CheckReport {
	report := &CheckReport{
		Stats:           reg.Stats(),
		Duplicates:      reg.Duplicates(),
		DanglingParents: reg.DanglingParents(),
		Cycles:          reg.DetectCycles(),
		UnresolvedEnums: reg.UnresolvedEnums(),
	}
	if report.DanglingParents == nil {
		report.DanglingParents = []catalog.DanglingParent{}
	}
	if report.Cycles == nil {
		report.Cycles = [][]string{}
	}
	return report
}

func renderCheckReport(w io.Writer, r *CheckReport) {
	ui.Header(w, "Catalogue", noColor)
	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Classes", strconv.Itoa(r.Stats.Classes))
	kv.AddRow("Structs", strconv.Itoa(r.Stats.Structs))
	kv.AddRow("Enums", strconv.Itoa(r.Stats.Enums))
	kv.AddRow("Properties", strconv.Itoa(r.Stats.Properties))
	kv.AddRow("Functions", strconv.Itoa(r.Stats.Functions))
	kv.Render()
	fmt.Fprintln(w)

	opts := &ui.TableOptions{NoColor: noColor}

	if len(r.Duplicates) > 0 {
		ui.Header(w, fmt.Sprintf("Duplicate full names (%d)", len(r.Duplicates)), noColor)
		table := ui.NewTable(w, []string{"NAME", "KIND", "ORIGIN", "SHADOWS"}, opts)
		for _, d := range r.Duplicates {
			table.AddRow(d.FullName, d.Kind.String(), string(d.Origin),
				fmt.Sprintf("%s (%s)", d.Shadows, d.ShadowedOrigin))
		}
		table.Render()
		fmt.Fprintln(w)
	}

	if len(r.DanglingParents) > 0 {
		ui.Header(w, fmt.Sprintf("Unknown parents (%d)", len(r.DanglingParents)), noColor)
		table := ui.NewTable(w, []string{"TYPE", "PARENT"}, opts)
		for _, d := range r.DanglingParents {
			table.AddRow(d.Child, d.Parent)
		}
		table.Render()
		fmt.Fprintln(w)
	}

	section := ui.NewSection(w, "Parent cycles", noColor)
	for _, cycle := range r.Cycles {
		section.AddLine(strings.Join(cycle, " → "))
	}
	section.Render()

	if len(r.UnresolvedEnums) > 0 {
		ui.Header(w, fmt.Sprintf("Unresolved enums (%d)", len(r.UnresolvedEnums)), noColor)
		table := ui.NewTable(w, []string{"OWNER", "MEMBER", "ENUM"}, opts)
		for _, ref := range r.UnresolvedEnums {
			table.AddRow(ref.Owner, ref.Member, ref.EnumName)
		}
		table.Render()
		fmt.Fprintln(w)
	}

	if n := r.Issues(); n > 0 {
		fmt.Fprint(w, ui.Warning(fmt.Sprintf("%s found", plural(n, "issue", "issues")), noColor))
		return
	}
	ui.WriteSuccess(w, "No integrity issues found", noColor)
}
