package catalog

import (
	"regexp"
	"strings"
)

// Descriptions is the flat description overlay. Keys are "TypeName" for
// classes, structs and enums, "TypeName:MemberName" for properties and
// functions, and "EnumName.MemberName" for enum members. Type and enum names
// are short names, not FullNames.
type Descriptions map[string]string

var paramPattern = regexp.MustCompile(`(?i)^@param\s+(\w+)\s+(.*)`)

// apply attaches the overlay to every entity of r.
func (d Descriptions) apply(r *Registry) {
	if len(d) == 0 {
		return
	}

	for t := range r.All() {
		if text, ok := d[t.Name]; ok {
			t.Description = text
		}
		for i := range t.Properties {
			p := &t.Properties[i]
			if text, ok := d[t.Name+":"+p.Name]; ok {
				p.Description = text
			}
		}
		for i := range t.Functions {
			f := &t.Functions[i]
			if text, ok := d[t.Name+":"+f.Name]; ok {
				ApplyFunctionDescription(f, text)
			}
		}
	}

	for _, e := range r.enums {
		if text, ok := d[e.Name]; ok {
			e.Description = text
		}
		for i := range e.Members {
			m := &e.Members[i]
			if text, ok := d[e.Name+"."+m.Name]; ok {
				m.Description = text
			}
		}
	}
}

// ApplyFunctionDescription parses a structured function comment into f.
//
// "@param <name> <text>" lines set the named parameter's description and make
// it current; following plain lines are appended to it. Any other line
// starting with '@' clears the current parameter and is dropped. Plain lines
// with no current parameter form the function's own description. A
// malformed @param line is skipped and leaves the current parameter as is.
func ApplyFunctionDescription(f *Function, text string) {
	var (
		body    []string
		current *Property
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "@") {
			if !hasParamTag(line) {
				current = nil
				continue
			}
			m := paramPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current = nil
			if p, ok := f.Param(m[1]); ok {
				p.Description = strings.TrimSpace(m[2])
				current = p
			}
			continue
		}

		if current != nil {
			current.Description += "\n" + line
			continue
		}
		body = append(body, line)
	}

	f.Description = strings.TrimSpace(strings.Join(body, "\n"))
}

func hasParamTag(line string) bool {
	return len(line) >= len("@param") && strings.EqualFold(line[:len("@param")], "@param")
}
