package query

import (
	"fmt"

	"github.com/conduit-lang/classview/runtime/catalog"
)

// TotalsMode selects how Result.Total and Result.TotalPages are computed.
type TotalsMode string

const (
	// TotalsCombined counts classes and structs together.
	TotalsCombined TotalsMode = "combined"
	// TotalsClasses counts matched classes only, while the page still mixes
	// classes and structs. Kept for clients of the legacy API.
	TotalsClasses TotalsMode = "classes"
)

// ParseTotalsMode validates a totals mode name. Empty means TotalsCombined.
func ParseTotalsMode(s string) (TotalsMode, error) {
	switch TotalsMode(s) {
	case "", TotalsCombined:
		return TotalsCombined, nil
	case TotalsClasses:
		return TotalsClasses, nil
	default:
		return "", fmt.Errorf("unknown totals mode %q (want %q or %q)", s, TotalsCombined, TotalsClasses)
	}
}

// Options bounds the work a single query may do.
type Options struct {
	MaxClauses int        // 0 = unlimited
	MaxDepth   int        // parent walk limit, 0 = catalog.DefaultMaxDepth
	Totals     TotalsMode // "" = TotalsCombined
}

// DefaultOptions returns the limits used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxClauses: 64,
		MaxDepth:   catalog.DefaultMaxDepth,
		Totals:     TotalsCombined,
	}
}

// Request is one filtered, paginated query. Page is 0-based.
type Request struct {
	Filters  []string
	Page     int
	PageSize int
}

// Result is one page of matching classes and structs.
type Result struct {
	Entities       []*catalog.Type
	Total          int
	TotalPages     int
	ClassesMatched int
	StructsMatched int
}

// Engine evaluates queries against one registry. It holds no mutable state
// and may be used from many goroutines.
type Engine struct {
	reg  *catalog.Registry
	opts Options
}

// NewEngine creates an engine over reg.
func NewEngine(reg *catalog.Registry, opts Options) *Engine {
	if opts.Totals == "" {
		opts.Totals = TotalsCombined
	}
	return &Engine{reg: reg, opts: opts}
}

// Registry returns the registry the engine queries.
func (e *Engine) Registry() *catalog.Registry {
	return e.reg
}

// Query parses the request's filters, selects every matching class and
// struct in declaration order (classes first) and returns the requested page.
// An out-of-range page yields no entities and no error.
func (e *Engine) Query(req Request) (*Result, error) {
	if req.Page < 0 {
		return nil, &ValidationError{Field: "page", Value: fmt.Sprint(req.Page), Err: ErrInvalidPagination}
	}
	if req.PageSize <= 0 {
		return nil, &ValidationError{Field: "pageSize", Value: fmt.Sprint(req.PageSize), Err: ErrInvalidPagination}
	}

	filters, err := ParseFilters(req.Filters, e.opts.MaxClauses)
	if err != nil {
		return nil, err
	}

	classes, structs := e.Filter(filters)
	matched := make([]*catalog.Type, 0, len(classes)+len(structs))
	matched = append(matched, classes...)
	matched = append(matched, structs...)

	res := &Result{
		Entities:       paginate(matched, req.Page, req.PageSize),
		ClassesMatched: len(classes),
		StructsMatched: len(structs),
	}
	switch e.opts.Totals {
	case TotalsClasses:
		res.Total = len(classes)
	default:
		res.Total = len(matched)
	}
	res.TotalPages = pageCount(res.Total, req.PageSize)

	return res, nil
}

// Filter returns the matching classes and structs, each in declaration order.
func (e *Engine) Filter(f *Filters) (classes, structs []*catalog.Type) {
	for t := range e.reg.Types(catalog.KindClass) {
		if e.MatchType(t, f) {
			classes = append(classes, t)
		}
	}
	for t := range e.reg.Types(catalog.KindStruct) {
		if e.MatchType(t, f) {
			structs = append(structs, t)
		}
	}
	return classes, structs
}

// MatchType reports whether t satisfies every clause of f. Evaluation stops
// at the first failing clause.
func (e *Engine) MatchType(t *catalog.Type, f *Filters) bool {
	for _, tok := range f.Name {
		if !tok.Match(t.Name) {
			return false
		}
	}
	for _, tok := range f.Extends {
		if !tok.Match(t.Parent) {
			return false
		}
	}
	if len(f.Namespace) > 0 {
		ns := t.Namespace()
		for _, tok := range f.Namespace {
			if !tok.Match(ns) {
				return false
			}
		}
	}
	if f.HasProperties && len(t.Properties) == 0 {
		return false
	}
	if f.HasFunctions && len(t.Functions) == 0 {
		return false
	}
	if f.HasRepFunctions && !t.HasReplicatedFunctions() {
		return false
	}
	for _, tok := range f.HasProp {
		if !hasProperty(t, tok) {
			return false
		}
	}
	// Parent walks are the most expensive clause, so they run last.
	for _, tok := range f.DeepExtends {
		if !e.reg.ExtendsTransitively(t.FullName, tok.Match, e.opts.MaxDepth) {
			return false
		}
	}
	return true
}

// ExtendsTransitively reports whether the type named start, or any of its
// ancestors, has a Name matching token.
func (e *Engine) ExtendsTransitively(start, token string) bool {
	return e.reg.ExtendsTransitively(start, ParseToken(token).Match, e.opts.MaxDepth)
}

func hasProperty(t *catalog.Type, tok Token) bool {
	for i := range t.Properties {
		if tok.Match(t.Properties[i].Name) {
			return true
		}
	}
	return false
}

func paginate(items []*catalog.Type, page, size int) []*catalog.Type {
	if page > len(items)/size {
		return []*catalog.Type{}
	}
	start := page * size
	end := len(items)
	if end-start > size {
		end = start + size
	}
	return items[start:end:end]
}

func pageCount(total, size int) int {
	if total == 0 {
		return 0
	}
	return (total-1)/size + 1
}
