package catalog

import "slices"

// DefaultMaxDepth bounds parent walks when the caller passes no limit.
const DefaultMaxDepth = 256

// DanglingParent is a type whose Parent does not resolve in the registry.
type DanglingParent struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// ExtendsTransitively walks the parent chain starting at the type named
// start (inclusive) and reports whether any type's Name satisfies match.
//
// An unresolved FullName ends the walk as a non-match. So does a cycle or a
// chain longer than maxDepth; maxDepth <= 0 means DefaultMaxDepth.
func (r *Registry) ExtendsTransitively(start string, match func(name string) bool, maxDepth int) bool {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	// Chains are short; a slice beats a map for the visited set.
	visited := make([]string, 0, 16)
	current := start
	for depth := 0; current != "" && depth < maxDepth; depth++ {
		if slices.Contains(visited, current) {
			return false
		}
		visited = append(visited, current)

		t, ok := r.types[current]
		if !ok {
			return false
		}
		if match(t.Name) {
			return true
		}
		current = t.Parent
	}
	return false
}

// Ancestors returns the resolved parent chain of fullName, nearest first.
// The walk stops at a root, an unresolved parent, a cycle, or after
// DefaultMaxDepth steps. An unknown fullName has no ancestors.
func (r *Registry) Ancestors(fullName string) []*Type {
	t, ok := r.types[fullName]
	if !ok {
		return nil
	}

	var chain []*Type
	seen := map[string]bool{t.FullName: true}
	for current := t.Parent; current != "" && len(chain) < DefaultMaxDepth; {
		if seen[current] {
			break
		}
		seen[current] = true

		parent, ok := r.types[current]
		if !ok {
			break
		}
		chain = append(chain, parent)
		current = parent.Parent
	}
	return chain
}

// DetectCycles returns every parent cycle in the registry. Each cycle lists
// FullNames in walk order and is closed by repeating its first element.
func (r *Registry) DetectCycles() [][]string {
	const (
		unvisited = iota
		onPath
		done
	)

	var cycles [][]string
	state := make(map[string]int, len(r.types))
	for t := range r.All() {
		if state[t.FullName] != unvisited {
			continue
		}

		// Every type has at most one parent, so a walk is a simple path.
		var path []string
		current := t.FullName
		for {
			st := state[current]
			if st == done {
				break
			}
			if st == onPath {
				start := slices.Index(path, current)
				cycle := make([]string, len(path)-start, len(path)-start+1)
				copy(cycle, path[start:])
				cycles = append(cycles, append(cycle, current))
				break
			}

			next, ok := r.types[current]
			if !ok {
				break
			}
			state[current] = onPath
			path = append(path, current)
			if next.Parent == "" {
				break
			}
			current = next.Parent
		}

		for _, name := range path {
			state[name] = done
		}
	}
	return cycles
}

// DanglingParents lists every class or struct whose non-empty Parent does
// not resolve, in declaration order.
func (r *Registry) DanglingParents() []DanglingParent {
	var out []DanglingParent
	for t := range r.All() {
		if t.Parent == "" {
			continue
		}
		if _, ok := r.types[t.Parent]; !ok {
			out = append(out, DanglingParent{Child: t.FullName, Parent: t.Parent})
		}
	}
	return out
}
