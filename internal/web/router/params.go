package router

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ParamExtractor provides utilities for extracting and converting parameters
type ParamExtractor struct {
	req *http.Request
}

// NewParamExtractor creates a new parameter extractor for the given request
func NewParamExtractor(req *http.Request) *ParamExtractor {
	return &ParamExtractor{req: req}
}

// QueryParam extracts a query parameter by name
func (p *ParamExtractor) QueryParam(name string) string {
	return p.req.URL.Query().Get(name)
}

// QueryParamInt extracts a query parameter as an int. A missing parameter
// yields defaultValue; a malformed one is an error.
func (p *ParamExtractor) QueryParamInt(name string, defaultValue int) (int, error) {
	value := strings.TrimSpace(p.req.URL.Query().Get(name))
	if value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q: must be an integer", name, value)
	}

	return i, nil
}

// QueryParamArray extracts every value of a repeated query parameter
func (p *ParamExtractor) QueryParamArray(name string) []string {
	return p.req.URL.Query()[name]
}
