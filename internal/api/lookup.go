package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/conduit-lang/classview/internal/web/response"
	"github.com/conduit-lang/classview/internal/web/router"
	"github.com/conduit-lang/classview/runtime/catalog"
)

// ClassResponse is a class with its resolved parent chain, nearest first,
// and the FullNames of its direct children.
type ClassResponse struct {
	*catalog.Type
	Ancestors []string `json:"Ancestors"`
	Children  []string `json:"Children"`
}

func (a *API) getClass(w http.ResponseWriter, r *http.Request) {
	name, ok := requiredParam(w, r, "classname")
	if !ok {
		return
	}
	snap, ok := a.loadSnapshot(w, r)
	if !ok {
		return
	}

	reg := snap.Registry
	class, ok := reg.FindClassFold(name)
	if !ok {
		response.RenderNotFound(w, fmt.Sprintf("class not found: %s", name))
		return
	}

	response.RenderOK(w, NewClassResponse(reg, class))
}

// NewClassResponse resolves the ancestors and children of class in reg.
func NewClassResponse(reg *catalog.Registry, class *catalog.Type) *ClassResponse {
	ancestors := make([]string, 0)
	for _, t := range reg.Ancestors(class.FullName) {
		ancestors = append(ancestors, t.FullName)
	}
	return &ClassResponse{
		Type:      class,
		Ancestors: ancestors,
		Children:  reg.Children(class.FullName),
	}
}

func (a *API) getStruct(w http.ResponseWriter, r *http.Request) {
	name, ok := requiredParam(w, r, "structname")
	if !ok {
		return
	}
	snap, ok := a.loadSnapshot(w, r)
	if !ok {
		return
	}

	s, ok := snap.Registry.FindStructFold(name)
	if !ok {
		response.RenderNotFound(w, fmt.Sprintf("struct not found: %s", name))
		return
	}
	response.RenderOK(w, s)
}

func (a *API) getEnum(w http.ResponseWriter, r *http.Request) {
	name, ok := requiredParam(w, r, "enumname")
	if !ok {
		return
	}
	snap, ok := a.loadSnapshot(w, r)
	if !ok {
		return
	}

	e, ok := snap.Registry.FindEnumFold(name)
	if !ok {
		response.RenderNotFound(w, fmt.Sprintf("enum not found: %s", name))
		return
	}
	response.RenderOK(w, e)
}

func requiredParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(router.NewParamExtractor(r).QueryParam(name))
	if value == "" {
		response.RenderBadRequest(w, fmt.Sprintf("missing %s parameter", name))
		return "", false
	}
	return value, true
}
