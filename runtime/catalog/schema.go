package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the category of a catalogue entity.
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindStruct
	KindEnum
)

// String returns the lowercase name used on the wire ("class", "struct", "enum").
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values decode
// to KindUnknown; the registry build assigns the real kind anyway.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "class":
		*k = KindClass
	case "struct":
		*k = KindStruct
	case "enum":
		*k = KindEnum
	default:
		*k = KindUnknown
	}
	return nil
}

// Origin names the raw source an entity was loaded from.
type Origin string

const (
	// OriginNative is the catalogue dumped from native (C++) reflection data
	OriginNative Origin = "native"
	// OriginBlueprint is the catalogue dumped from script/blueprint assets
	OriginBlueprint Origin = "blueprint"
)

// Identity is the part of an entity that ancestry walks and lookups need.
type Identity struct {
	Kind     Kind
	Name     string
	FullName string
	Parent   string
}

// Entity is implemented by every record the registry can resolve:
// classes and structs (*Type) and enums (*Enum).
type Entity interface {
	Identity() Identity
}

// Source is one raw catalogue as stored in a data file. Several sources are
// concatenated by Build before indexing.
type Source struct {
	Origin  Origin `json:"-"`
	Enums   []Enum `json:"Enums"`
	Structs []Type `json:"Structs"`
	Classes []Type `json:"Classes"`
}

// Type is a reflected class or struct.
type Type struct {
	Kind         Kind       `json:"Type,omitempty"`
	Name         string     `json:"Name"`
	FullName     string     `json:"FullName"`
	PrefixedName string     `json:"PrefixedName,omitempty"`
	CppName      string     `json:"CppName,omitempty"`
	Parent       string     `json:"Parent"`
	Flags        uint64     `json:"Flags"`
	Properties   []Property `json:"Properties"`
	Functions    []Function `json:"Functions"`
	Description  string     `json:"Description,omitempty"`
	Origin       Origin     `json:"Origin,omitempty"`
}

// Identity implements Entity
func (t *Type) Identity() Identity {
	return Identity{Kind: t.Kind, Name: t.Name, FullName: t.FullName, Parent: t.Parent}
}

// Namespace returns the part of FullName before the first '.'; a FullName
// without a separator is its own namespace.
func (t *Type) Namespace() string {
	ns, _, _ := strings.Cut(t.FullName, ".")
	return ns
}

// ClassFlags interprets Flags as class flags.
func (t *Type) ClassFlags() ClassFlags {
	return ClassFlags(t.Flags)
}

// StructFlags interprets Flags as struct flags.
func (t *Type) StructFlags() StructFlags {
	return StructFlags(t.Flags)
}

// HasReplicatedFunctions reports whether any function replicates to clients.
func (t *Type) HasReplicatedFunctions() bool {
	for i := range t.Functions {
		if t.Functions[i].Replicates() {
			return true
		}
	}
	return false
}

// Property returns the first property with the given name.
func (t *Type) Property(name string) (*Property, bool) {
	for i := range t.Properties {
		if t.Properties[i].Name == name {
			return &t.Properties[i], true
		}
	}
	return nil, false
}

// Function returns the first function with the given name.
func (t *Type) Function(name string) (*Function, bool) {
	for i := range t.Functions {
		if t.Functions[i].Name == name {
			return &t.Functions[i], true
		}
	}
	return nil, false
}

// Function is a reflected function on a class.
type Function struct {
	Name        string        `json:"Name"`
	Flags       FunctionFlags `json:"Flags"`
	Params      []Property    `json:"Params"`
	Description string        `json:"Description,omitempty"`
}

// Replicates reports whether the function is network-replicated to clients.
func (f *Function) Replicates() bool {
	return FunctionReplicates(f.Flags)
}

// Param returns the first parameter with the given name.
func (f *Function) Param(name string) (*Property, bool) {
	for i := range f.Params {
		if f.Params[i].Name == name {
			return &f.Params[i], true
		}
	}
	return nil, false
}

// Enum is a reflected enumeration.
type Enum struct {
	Name        string   `json:"Name"`
	CppName     string   `json:"CppName,omitempty"`
	FullName    string   `json:"FullName"`
	Members     []Member `json:"Members"`
	Description string   `json:"Description,omitempty"`
	Origin      Origin   `json:"Origin,omitempty"`
}

// Identity implements Entity. Enums never have a parent.
func (e *Enum) Identity() Identity {
	return Identity{Kind: KindEnum, Name: e.Name, FullName: e.FullName}
}

// Member is a single enumerator.
type Member struct {
	Name        string `json:"Name"`
	Value       int64  `json:"Value"`
	Description string `json:"Description,omitempty"`
}

// UnmarshalJSON accepts values that only fit in a uint64 (a "_MAX" member of
// a 64-bit enum, for example) and stores them with two's-complement wrap.
func (m *Member) UnmarshalJSON(data []byte) error {
	var w struct {
		Name        string      `json:"Name"`
		Value       json.Number `json:"Value"`
		Description string      `json:"Description"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to decode enum member: %w", err)
	}

	value, err := parseMemberValue(w.Value)
	if err != nil {
		return fmt.Errorf("enum member %s: %w", w.Name, err)
	}

	*m = Member{Name: w.Name, Value: value, Description: w.Description}
	return nil
}

func parseMemberValue(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return v, nil
	}
	if v, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return int64(v), nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", n)
	}
	return int64(f), nil
}

// Property type tags used by the source data.
const (
	TagStruct = "StructProperty"
	TagArray  = "ArrayProperty"
	TagSet    = "SetProperty"
	TagEnum   = "EnumProperty"
	TagByte   = "ByteProperty"
	TagMap    = "MapProperty"
)

// Property is a reflected property or function parameter. The common fields
// are shared by every variant; Shape carries the variant-specific part.
type Property struct {
	Name        string
	Type        string
	CppType     string
	ArrayDim    int
	Offset      int
	Size        int
	Flags       PropertyFlags
	InnerType   string
	Description string

	// Shape is never nil on a decoded property.
	Shape Shape
}

// Shape is the closed set of property variants: *ScalarShape, *StructShape,
// *ContainerShape, *EnumShape and *MapShape.
type Shape interface {
	isShape()
}

// ScalarShape covers every property without cross references (bool, int,
// float, string, name, object and class references, and unknown tags).
type ScalarShape struct{}

// StructShape is a struct-typed property; StructName is the struct's FullName.
type StructShape struct {
	StructName string
}

// ContainerShape is an array or set property wrapping one inner property.
type ContainerShape struct {
	Inner *Property
}

// EnumShape is an enum or byte property. Enum is a weak reference resolved
// from EnumName when the registry is built; it stays nil when unresolved.
type EnumShape struct {
	EnumName string
	Enum     *Enum
}

// MapShape is a map property with key and value properties.
type MapShape struct {
	Key   *Property
	Value *Property
}

func (*ScalarShape) isShape()    {}
func (*StructShape) isShape()    {}
func (*ContainerShape) isShape() {}
func (*EnumShape) isShape()      {}
func (*MapShape) isShape()       {}

// propertyWire is the flat JSON layout of a property in the data files.
type propertyWire struct {
	Name           string        `json:"Name"`
	Type           string        `json:"Type"`
	CppType        string        `json:"CppType,omitempty"`
	ArrayDim       int           `json:"ArrayDim"`
	Offset         int           `json:"Offset"`
	Size           int           `json:"Size"`
	Flags          PropertyFlags `json:"Flags"`
	InnerType      string        `json:"InnerType,omitempty"`
	Description    string        `json:"Description,omitempty"`
	ArrayInnerType *Property     `json:"ArrayInnerType,omitempty"`
	KeyProperty    *Property     `json:"KeyProperty,omitempty"`
	ValueProperty  *Property     `json:"ValueProperty,omitempty"`
	Enum           *Enum         `json:"Enum,omitempty"`
}

// UnmarshalJSON decodes a property and picks its Shape from the Type tag.
func (p *Property) UnmarshalJSON(data []byte) error {
	var w propertyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to decode property: %w", err)
	}

	*p = Property{
		Name:        w.Name,
		Type:        w.Type,
		CppType:     w.CppType,
		ArrayDim:    w.ArrayDim,
		Offset:      w.Offset,
		Size:        w.Size,
		Flags:       w.Flags,
		InnerType:   w.InnerType,
		Description: w.Description,
	}

	switch w.Type {
	case TagStruct:
		p.Shape = &StructShape{StructName: w.InnerType}
	case TagArray, TagSet:
		p.Shape = &ContainerShape{Inner: w.ArrayInnerType}
	case TagEnum, TagByte:
		p.Shape = &EnumShape{EnumName: w.InnerType}
	case TagMap:
		p.Shape = &MapShape{Key: w.KeyProperty, Value: w.ValueProperty}
	default:
		p.Shape = &ScalarShape{}
	}
	return nil
}

// MarshalJSON flattens the Shape back into the data-file layout. Resolved
// enum references are embedded under "Enum".
func (p Property) MarshalJSON() ([]byte, error) {
	w := propertyWire{
		Name:        p.Name,
		Type:        p.Type,
		CppType:     p.CppType,
		ArrayDim:    p.ArrayDim,
		Offset:      p.Offset,
		Size:        p.Size,
		Flags:       p.Flags,
		InnerType:   p.InnerType,
		Description: p.Description,
	}

	switch s := p.Shape.(type) {
	case *ContainerShape:
		w.ArrayInnerType = s.Inner
	case *EnumShape:
		w.Enum = s.Enum
	case *MapShape:
		w.KeyProperty = s.Key
		w.ValueProperty = s.Value
	}

	return json.Marshal(w)
}

// EnumRef returns the resolved enum of an enum or byte property.
func (p *Property) EnumRef() (*Enum, bool) {
	if s, ok := p.Shape.(*EnumShape); ok && s.Enum != nil {
		return s.Enum, true
	}
	return nil, false
}
