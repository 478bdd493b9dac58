package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/classview/internal/api"
	"github.com/conduit-lang/classview/internal/cli/ui"
	"github.com/conduit-lang/classview/runtime/catalog"
)

var showFormat string

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <fullname>",
		Short: "Show one class, struct or enum",
		Long: `Show everything the catalogue knows about one class, struct or enum:
flags, properties, functions, and for classes the parent chain and direct
children.

The name is a FullName such as Engine.Actor and is matched without regard
to case. Classes are looked up first, then structs, then enums.`,
		Example: `  classview show Engine.Actor
  classview show core.vector
  classview show Engine.Pawn --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().StringVar(&showFormat, "format", formatTable, "Output format: json or table")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := validateFormat(showFormat); err != nil {
		return err
	}

	_, snap, err := loadSnapshot(cmd)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(args[0])
	reg := snap.Registry
	out := cmd.OutOrStdout()

	if class, ok := reg.FindClassFold(name); ok {
		resp := api.NewClassResponse(reg, class)
		if showFormat == formatJSON {
			return writeJSON(out, resp)
		}
		renderType(out, class, resp.Ancestors, resp.Children)
		return nil
	}

	if s, ok := reg.FindStructFold(name); ok {
		if showFormat == formatJSON {
			return writeJSON(out, s)
		}
		renderType(out, s, nil, reg.Children(s.FullName))
		return nil
	}

	if e, ok := reg.FindEnumFold(name); ok {
		if showFormat == formatJSON {
			return writeJSON(out, e)
		}
		renderEnum(out, e)
		return nil
	}

	suggestions := ui.SuggestNames(name, allNames(reg), nil)
	fmt.Fprint(cmd.ErrOrStderr(), ui.NotFoundError(name, suggestions, noColor))
	return errReported
}

// allNames yields every FullName in the registry: classes, structs, then enums.
func allNames(reg *catalog.Registry) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := range reg.All() {
			if !yield(t.FullName) {
				return
			}
		}
		for _, e := range reg.Enums() {
			if !yield(e.FullName) {
				return
			}
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func renderType(w io.Writer, t *catalog.Type, ancestors, children []string) {
	ui.Header(w, t.FullName, noColor)

	var flags []string
	if t.Kind == catalog.KindClass {
		flags = t.ClassFlags().Names()
	} else {
		flags = t.StructFlags().Names()
	}

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Kind", t.Kind.String())
	kv.AddRow("Name", t.Name)
	kv.AddRowIf("C++ name", t.CppName)
	kv.AddRow("Parent", orDash(t.Parent))
	kv.AddRowIf("Origin", string(t.Origin))
	kv.AddRowIf("Flags", strings.Join(flags, ", "))
	kv.AddRowIf("Description", t.Description)
	kv.Render()
	fmt.Fprintln(w)

	if len(ancestors) > 0 {
		section := ui.NewSection(w, "Ancestors", noColor)
		section.AddLine(strings.Join(ancestors, " → "))
		section.Render()
	}

	section := ui.NewSection(w, "Children", noColor)
	for _, child := range children {
		section.AddLine(child)
	}
	section.Render()

	section = ui.NewSection(w, "Properties", noColor)
	for i := range t.Properties {
		section.AddLine(propertyLine(&t.Properties[i]))
	}
	section.Render()

	section = ui.NewSection(w, "Functions", noColor)
	for i := range t.Functions {
		section.AddLine(functionLine(&t.Functions[i]))
	}
	section.Render()
}

func renderEnum(w io.Writer, e *catalog.Enum) {
	ui.Header(w, e.FullName, noColor)

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Kind", catalog.KindEnum.String())
	kv.AddRow("Name", e.Name)
	kv.AddRowIf("C++ name", e.CppName)
	kv.AddRowIf("Origin", string(e.Origin))
	kv.AddRowIf("Description", e.Description)
	kv.Render()
	fmt.Fprintln(w)

	section := ui.NewSection(w, "Members", noColor)
	for _, m := range e.Members {
		section.AddLinef("%s = %d", m.Name, m.Value)
	}
	section.Render()
}

// typeLabel renders a property type with its inner type, e.g.
// StructProperty<Core.Vector> or ArrayProperty<IntProperty>.
func typeLabel(p *catalog.Property) string {
	switch s := p.Shape.(type) {
	case *catalog.StructShape:
		return fmt.Sprintf("%s<%s>", p.Type, s.StructName)
	case *catalog.EnumShape:
		if s.EnumName != "" {
			return fmt.Sprintf("%s<%s>", p.Type, s.EnumName)
		}
	case *catalog.ContainerShape:
		if s.Inner != nil {
			return fmt.Sprintf("%s<%s>", p.Type, typeLabel(s.Inner))
		}
	case *catalog.MapShape:
		if s.Key != nil && s.Value != nil {
			return fmt.Sprintf("%s<%s, %s>", p.Type, typeLabel(s.Key), typeLabel(s.Value))
		}
	}
	return p.Type
}

func propertyLine(p *catalog.Property) string {
	line := p.Name + " " + typeLabel(p)
	if flags := p.Flags.Names(); len(flags) > 0 {
		line += " [" + strings.Join(flags, ", ") + "]"
	}
	return line
}

func functionLine(f *catalog.Function) string {
	var params []string
	ret := ""
	for i := range f.Params {
		p := &f.Params[i]
		if p.Flags.IsReturnParm() {
			ret = " " + typeLabel(p)
			continue
		}
		params = append(params, p.Name+" "+typeLabel(p))
	}

	line := fmt.Sprintf("%s(%s)%s", f.Name, strings.Join(params, ", "), ret)
	if flags := f.Flags.Names(); len(flags) > 0 {
		line += " [" + strings.Join(flags, ", ") + "]"
	}
	return line
}
