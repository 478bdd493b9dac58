package query

import (
	"errors"
	"fmt"
	"strings"
)

// Key is a filter clause key.
type Key string

const (
	KeyName        Key = "name"
	KeyExtends     Key = "extends"
	KeyDeepExtends Key = "deepextends"
	KeyNamespace   Key = "namespace"
	KeyHas         Key = "has"
	KeyHasProp     Key = "hasprop"
)

// Keys lists every valid clause key.
var Keys = []Key{KeyName, KeyExtends, KeyDeepExtends, KeyNamespace, KeyHas, KeyHasProp}

// Has vocabulary terms.
const (
	HasProperties   = "properties"
	HasFunctions    = "functions"
	HasRepFunctions = "repfunctions"
)

var (
	// ErrInvalidFilterKey is wrapped by a ValidationError for an unknown
	// clause key.
	ErrInvalidFilterKey = errors.New("invalid filter key")

	// ErrTooManyClauses is wrapped when a request carries more clauses than
	// the engine accepts.
	ErrTooManyClauses = errors.New("too many filter clauses")

	// ErrInvalidPagination is wrapped for a negative page or a non-positive
	// page size.
	ErrInvalidPagination = errors.New("invalid pagination")
)

// ValidationError reports a request the engine refuses to evaluate.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Err, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Clause is one parsed "key:value" filter.
type Clause struct {
	Key   Key
	Value string
	Token Token
}

// Filters groups parsed clauses by key. A key with no clauses passes every
// entity.
type Filters struct {
	Name        []Token
	Extends     []Token
	DeepExtends []Token
	Namespace   []Token
	HasProp     []Token

	// Recognised has: terms. Unknown terms are dropped.
	HasProperties   bool
	HasFunctions    bool
	HasRepFunctions bool
}

// Len returns the number of token clauses plus the number of has: terms set.
func (f *Filters) Len() int {
	n := len(f.Name) + len(f.Extends) + len(f.DeepExtends) + len(f.Namespace) + len(f.HasProp)
	for _, set := range []bool{f.HasProperties, f.HasFunctions, f.HasRepFunctions} {
		if set {
			n++
		}
	}
	return n
}

// ParseClause splits a filter string on its first ':'. The key is
// lowercased. A string without ':' or with an empty value is a name clause
// whose token is the text before the ':'.
func ParseClause(filter string) (Clause, error) {
	rawKey, value, _ := strings.Cut(filter, ":")
	if value == "" {
		return Clause{Key: KeyName, Value: rawKey, Token: ParseToken(rawKey)}, nil
	}

	key := Key(strings.ToLower(rawKey))
	switch key {
	case KeyName, KeyExtends, KeyDeepExtends, KeyNamespace, KeyHas, KeyHasProp:
		return Clause{Key: key, Value: value, Token: ParseToken(value)}, nil
	default:
		return Clause{}, &ValidationError{Field: "filter", Value: string(key), Err: ErrInvalidFilterKey}
	}
}

// ParseFilters parses every filter string. maxClauses <= 0 disables the
// clause limit.
func ParseFilters(filters []string, maxClauses int) (*Filters, error) {
	if maxClauses > 0 && len(filters) > maxClauses {
		return nil, &ValidationError{
			Field: "filters",
			Value: fmt.Sprintf("%d > %d", len(filters), maxClauses),
			Err:   ErrTooManyClauses,
		}
	}

	f := &Filters{}
	for _, raw := range filters {
		c, err := ParseClause(raw)
		if err != nil {
			return nil, err
		}

		switch c.Key {
		case KeyName:
			f.Name = append(f.Name, c.Token)
		case KeyExtends:
			f.Extends = append(f.Extends, c.Token)
		case KeyDeepExtends:
			f.DeepExtends = append(f.DeepExtends, c.Token)
		case KeyNamespace:
			f.Namespace = append(f.Namespace, c.Token)
		case KeyHasProp:
			f.HasProp = append(f.HasProp, c.Token)
		case KeyHas:
			// has: terms are compared literally; modifiers are not stripped.
			switch strings.ToLower(c.Value) {
			case HasProperties:
				f.HasProperties = true
			case HasFunctions:
				f.HasFunctions = true
			case HasRepFunctions:
				f.HasRepFunctions = true
			}
		}
	}
	return f, nil
}
