package catalog

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrDuplicateFullName is returned by Build in strict mode when two entities
// of the snapshot share a FullName.
var ErrDuplicateFullName = errors.New("duplicate full name")

// BuildOptions configures Build.
type BuildOptions struct {
	// Descriptions is applied to the entities after indexing. May be nil.
	Descriptions Descriptions

	// Strict turns the first duplicate FullName into ErrDuplicateFullName
	// instead of letting the later entry shadow the earlier one.
	Strict bool
}

// Duplicate records one FullName collision found while indexing. The entity
// of kind Kind from Origin replaced an entity of kind Shadows from
// ShadowedOrigin in the lookup index; both stay in the ordered sequences.
type Duplicate struct {
	FullName       string `json:"fullName"`
	Kind           Kind   `json:"kind"`
	Origin         Origin `json:"origin"`
	Shadows        Kind   `json:"shadows"`
	ShadowedOrigin Origin `json:"shadowedOrigin"`
}

// EnumRef is an enum reference from a property or parameter that did not
// resolve to any enum of the snapshot.
type EnumRef struct {
	Owner    string `json:"owner"`
	Member   string `json:"member"`
	EnumName string `json:"enumName"`
}

// Stats summarizes a registry.
type Stats struct {
	Classes         int `json:"classes"`
	Structs         int `json:"structs"`
	Enums           int `json:"enums"`
	Properties      int `json:"properties"`
	Functions       int `json:"functions"`
	Duplicates      int `json:"duplicates"`
	DanglingParents int `json:"danglingParents"`
	UnresolvedEnums int `json:"unresolvedEnums"`
}

// Registry is one immutable, fully indexed snapshot of the catalogue.
// All methods are safe for concurrent use once Build has returned.
type Registry struct {
	classes []*Type
	structs []*Type
	enums   []*Enum

	classByName  map[string]*Type
	structByName map[string]*Type
	enumByName   map[string]*Enum

	// types resolves ancestry: classes are indexed first, then structs,
	// so a struct shadows a class with the same FullName.
	types map[string]*Type

	// Lowercased FullName indexes. The first entity wins.
	classFold  map[string]*Type
	structFold map[string]*Type
	enumFold   map[string]*Enum

	children map[string][]string

	duplicates []Duplicate
	unresolved []EnumRef
}

// Build concatenates the sources in argument order, indexes them, applies
// the description overlay and resolves enum references. Build takes
// ownership of the sources' slices.
func Build(opts BuildOptions, sources ...Source) (*Registry, error) {
	var (
		enums   []Enum
		structs []Type
		classes []Type
	)
	for _, src := range sources {
		for i := range src.Enums {
			src.Enums[i].Origin = src.Origin
		}
		for i := range src.Structs {
			src.Structs[i].Kind = KindStruct
			src.Structs[i].Origin = src.Origin
		}
		for i := range src.Classes {
			src.Classes[i].Kind = KindClass
			src.Classes[i].Origin = src.Origin
		}
		enums = append(enums, src.Enums...)
		structs = append(structs, src.Structs...)
		classes = append(classes, src.Classes...)
	}

	r := &Registry{
		classes:      make([]*Type, len(classes)),
		structs:      make([]*Type, len(structs)),
		enums:        make([]*Enum, len(enums)),
		classByName:  make(map[string]*Type, len(classes)),
		structByName: make(map[string]*Type, len(structs)),
		enumByName:   make(map[string]*Enum, len(enums)),
		types:        make(map[string]*Type, len(classes)+len(structs)),
		classFold:    make(map[string]*Type, len(classes)),
		structFold:   make(map[string]*Type, len(structs)),
		enumFold:     make(map[string]*Enum, len(enums)),
		children:     make(map[string][]string),
	}

	for i := range enums {
		e := &enums[i]
		if e.Members == nil {
			e.Members = []Member{}
		}
		r.enums[i] = e
		if prev, ok := r.enumByName[e.FullName]; ok {
			r.duplicates = append(r.duplicates, Duplicate{
				FullName: e.FullName, Kind: KindEnum, Origin: e.Origin,
				Shadows: KindEnum, ShadowedOrigin: prev.Origin,
			})
		}
		r.enumByName[e.FullName] = e
		fold := strings.ToLower(e.FullName)
		if _, ok := r.enumFold[fold]; !ok {
			r.enumFold[fold] = e
		}
	}

	for i := range classes {
		t := &classes[i]
		normalizeType(t)
		r.classes[i] = t
		r.indexType(t, r.classByName, r.classFold)
	}
	for i := range structs {
		t := &structs[i]
		normalizeType(t)
		r.structs[i] = t
		r.indexType(t, r.structByName, r.structFold)
	}

	if opts.Strict && len(r.duplicates) > 0 {
		d := r.duplicates[0]
		return nil, fmt.Errorf("%w: %s %s", ErrDuplicateFullName, d.Kind, d.FullName)
	}

	opts.Descriptions.apply(r)
	r.resolveEnums()

	return r, nil
}

// normalizeType replaces nil sequences with empty ones and clears struct
// functions.
func normalizeType(t *Type) {
	if t.Properties == nil {
		t.Properties = []Property{}
	}
	if t.Kind == KindStruct || t.Functions == nil {
		t.Functions = []Function{}
	}
	for i := range t.Properties {
		normalizeProperty(&t.Properties[i])
	}
	for i := range t.Functions {
		f := &t.Functions[i]
		if f.Params == nil {
			f.Params = []Property{}
		}
		for j := range f.Params {
			normalizeProperty(&f.Params[j])
		}
	}
}

func normalizeProperty(p *Property) {
	if p.Shape == nil {
		p.Shape = &ScalarShape{}
	}
}

func (r *Registry) indexType(t *Type, byName, fold map[string]*Type) {
	if prev, ok := r.types[t.FullName]; ok {
		r.duplicates = append(r.duplicates, Duplicate{
			FullName: t.FullName, Kind: t.Kind, Origin: t.Origin,
			Shadows: prev.Kind, ShadowedOrigin: prev.Origin,
		})
	}
	byName[t.FullName] = t
	r.types[t.FullName] = t

	key := strings.ToLower(t.FullName)
	if _, ok := fold[key]; !ok {
		fold[key] = t
	}

	if t.Parent != "" {
		r.children[t.Parent] = append(r.children[t.Parent], t.FullName)
	}
}

func (r *Registry) resolveEnums() {
	for t := range r.All() {
		for i := range t.Properties {
			p := &t.Properties[i]
			r.resolveProperty(t.FullName, p.Name, p)
		}
		for i := range t.Functions {
			f := &t.Functions[i]
			for j := range f.Params {
				r.resolveProperty(t.FullName, f.Name+"."+f.Params[j].Name, &f.Params[j])
			}
		}
	}
}

// resolveProperty links enum shapes to their Enum, descending into
// container and map shapes.
func (r *Registry) resolveProperty(owner, member string, p *Property) {
	switch s := p.Shape.(type) {
	case *EnumShape:
		if s.EnumName == "" {
			return
		}
		if e, ok := r.enumByName[s.EnumName]; ok {
			s.Enum = e
			return
		}
		r.unresolved = append(r.unresolved, EnumRef{Owner: owner, Member: member, EnumName: s.EnumName})
	case *ContainerShape:
		if s.Inner != nil {
			normalizeProperty(s.Inner)
			r.resolveProperty(owner, member, s.Inner)
		}
	case *MapShape:
		if s.Key != nil {
			normalizeProperty(s.Key)
			r.resolveProperty(owner, member, s.Key)
		}
		if s.Value != nil {
			normalizeProperty(s.Value)
			r.resolveProperty(owner, member, s.Value)
		}
	case *StructShape, *ScalarShape:
	}
}

// Resolve looks up a class, struct or enum by exact FullName. Classes and
// structs take precedence over enums.
func (r *Registry) Resolve(fullName string) (Entity, bool) {
	if t, ok := r.types[fullName]; ok {
		return t, true
	}
	if e, ok := r.enumByName[fullName]; ok {
		return e, true
	}
	return nil, false
}

// Type looks up a class or struct by exact FullName.
func (r *Registry) Type(fullName string) (*Type, bool) {
	t, ok := r.types[fullName]
	return t, ok
}

// Class looks up a class by exact FullName.
func (r *Registry) Class(fullName string) (*Type, bool) {
	t, ok := r.classByName[fullName]
	return t, ok
}

// Struct looks up a struct by exact FullName.
func (r *Registry) Struct(fullName string) (*Type, bool) {
	t, ok := r.structByName[fullName]
	return t, ok
}

// Enum looks up an enum by exact FullName.
func (r *Registry) Enum(fullName string) (*Enum, bool) {
	e, ok := r.enumByName[fullName]
	return e, ok
}

// FindClassFold looks up a class by FullName ignoring case.
func (r *Registry) FindClassFold(fullName string) (*Type, bool) {
	t, ok := r.classFold[strings.ToLower(fullName)]
	return t, ok
}

// FindStructFold looks up a struct by FullName ignoring case.
func (r *Registry) FindStructFold(fullName string) (*Type, bool) {
	t, ok := r.structFold[strings.ToLower(fullName)]
	return t, ok
}

// FindEnumFold looks up an enum by FullName ignoring case.
func (r *Registry) FindEnumFold(fullName string) (*Enum, bool) {
	e, ok := r.enumFold[strings.ToLower(fullName)]
	return e, ok
}

// Classes returns the classes in declaration order.
// Returns a copy of the sequence; the entities themselves are shared.
func (r *Registry) Classes() []*Type {
	out := make([]*Type, len(r.classes))
	copy(out, r.classes)
	return out
}

// Structs returns the structs in declaration order.
func (r *Registry) Structs() []*Type {
	out := make([]*Type, len(r.structs))
	copy(out, r.structs)
	return out
}

// Enums returns the enums in declaration order.
func (r *Registry) Enums() []*Enum {
	out := make([]*Enum, len(r.enums))
	copy(out, r.enums)
	return out
}

// Types iterates over the classes or the structs in declaration order.
// Any other kind yields nothing.
func (r *Registry) Types(kind Kind) iter.Seq[*Type] {
	var seq []*Type
	switch kind {
	case KindClass:
		seq = r.classes
	case KindStruct:
		seq = r.structs
	}
	return func(yield func(*Type) bool) {
		for _, t := range seq {
			if !yield(t) {
				return
			}
		}
	}
}

// All iterates over every class and then every struct.
func (r *Registry) All() iter.Seq[*Type] {
	return func(yield func(*Type) bool) {
		for _, t := range r.classes {
			if !yield(t) {
				return
			}
		}
		for _, t := range r.structs {
			if !yield(t) {
				return
			}
		}
	}
}

// Children returns the FullNames of the types whose Parent is fullName.
func (r *Registry) Children(fullName string) []string {
	kids := r.children[fullName]
	out := make([]string, len(kids))
	copy(out, kids)
	return out
}

// Duplicates returns every FullName collision found during Build.
func (r *Registry) Duplicates() []Duplicate {
	out := make([]Duplicate, len(r.duplicates))
	copy(out, r.duplicates)
	return out
}

// UnresolvedEnums returns the enum references that matched no enum.
func (r *Registry) UnresolvedEnums() []EnumRef {
	out := make([]EnumRef, len(r.unresolved))
	copy(out, r.unresolved)
	return out
}

// Stats counts the registry's contents.
func (r *Registry) Stats() Stats {
	s := Stats{
		Classes:         len(r.classes),
		Structs:         len(r.structs),
		Enums:           len(r.enums),
		Duplicates:      len(r.duplicates),
		DanglingParents: len(r.DanglingParents()),
		UnresolvedEnums: len(r.unresolved),
	}
	for t := range r.All() {
		s.Properties += len(t.Properties)
		s.Functions += len(t.Functions)
	}
	return s
}
