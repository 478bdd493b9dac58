package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/metrics"
	"github.com/conduit-lang/classview/internal/web/cache"
	"github.com/conduit-lang/classview/internal/web/middleware"
	"github.com/conduit-lang/classview/internal/web/request"
	"github.com/conduit-lang/classview/internal/web/response"
	"github.com/conduit-lang/classview/internal/web/router"
	"github.com/conduit-lang/classview/runtime/catalog"
	"github.com/conduit-lang/classview/runtime/query"
)

// CacheHeader reports whether a query page came from the response cache.
const CacheHeader = "X-Cache"

type filteredClassesRequest struct {
	Filters      []string `json:"filters"`
	Page         *int     `json:"page"`
	LimitPerPage *int     `json:"limitPerPage"`
}

// FilteredClassesResponse is the body of a filtered-classes query. The
// nested classes object keeps the shape existing clients read.
type FilteredClassesResponse struct {
	Classes        ClassPage `json:"classes"`
	Total          int       `json:"total"`
	TotalPages     int       `json:"totalPages"`
	ClassesMatched int       `json:"classesMatched"`
	StructsMatched int       `json:"structsMatched"`
}

// ClassPage holds one page of classes and structs, classes first.
type ClassPage struct {
	Classes []*catalog.Type `json:"Classes"`
}

// NewFilteredClassesResponse wraps one page of query results. An empty page
// renders as an empty Classes array, never null.
func NewFilteredClassesResponse(res *query.Result) *FilteredClassesResponse {
	entities := res.Entities
	if entities == nil {
		entities = []*catalog.Type{}
	}
	return &FilteredClassesResponse{
		Classes:        ClassPage{Classes: entities},
		Total:          res.Total,
		TotalPages:     res.TotalPages,
		ClassesMatched: res.ClassesMatched,
		StructsMatched: res.StructsMatched,
	}
}

func (a *API) postFilteredClasses(w http.ResponseWriter, r *http.Request) {
	var body filteredClassesRequest
	if err := a.parser.ParseJSON(w, r, &body); err != nil {
		response.RenderError(w, request.StatusCode(err), err)
		return
	}

	page := 0
	if body.Page != nil {
		page = *body.Page
	}
	size := a.cfg.DefaultPageSize
	if body.LimitPerPage != nil {
		size = *body.LimitPerPage
	}

	a.serveQuery(w, r, body.Filters, page, size)
}

func (a *API) getFilteredClasses(w http.ResponseWriter, r *http.Request) {
	params := router.NewParamExtractor(r)

	page, err := params.QueryParamInt("page", 0)
	if err != nil {
		response.RenderBadRequest(w, err.Error())
		return
	}
	size, err := params.QueryParamInt("limitPerPage", a.cfg.DefaultPageSize)
	if err != nil {
		response.RenderBadRequest(w, err.Error())
		return
	}

	a.serveQuery(w, r, params.QueryParamArray("filter"), page, size)
}

// serveQuery answers one query page, from the cache when possible. Only
// successful pages are cached.
func (a *API) serveQuery(w http.ResponseWriter, r *http.Request, filters []string, page, size int) {
	if size > a.cfg.MaxPageSize {
		a.metrics.ObserveQuery(metrics.ResultInvalid, 0, 0)
		response.RenderError(w, http.StatusBadRequest, &query.ValidationError{
			Field: "limitPerPage",
			Value: strconv.Itoa(size),
			Err:   query.ErrInvalidPagination,
		})
		return
	}

	snap, ok := a.loadSnapshot(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	log := middleware.Logger(ctx)
	key := cache.QueryKey(snap.ID, filters, page, size)

	if body, hit := a.cached(ctx, log, key); hit {
		w.Header().Set(CacheHeader, "HIT")
		response.RenderRaw(w, http.StatusOK, body)
		return
	}

	start := time.Now()
	res, err := snap.Engine.Query(query.Request{Filters: filters, Page: page, PageSize: size})
	if err != nil {
		if query.IsValidationError(err) {
			a.metrics.ObserveQuery(metrics.ResultInvalid, 0, 0)
			response.RenderError(w, http.StatusBadRequest, err)
			return
		}
		a.metrics.ObserveQuery(metrics.ResultError, 0, 0)
		log.Error("query failed", zap.Strings("filters", filters), zap.Error(err))
		response.RenderInternalError(w)
		return
	}
	a.metrics.ObserveQuery(metrics.ResultOK, time.Since(start), res.ClassesMatched+res.StructsMatched)

	body, err := json.Marshal(NewFilteredClassesResponse(res))
	if err != nil {
		log.Error("failed to encode query result", zap.Error(err))
		response.RenderInternalError(w)
		return
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, body, a.cfg.CacheTTL); err != nil {
			log.Warn("failed to cache query result", zap.String("key", key), zap.Error(err))
		}
	}

	w.Header().Set(CacheHeader, "MISS")
	response.RenderRaw(w, http.StatusOK, body)
}

// cached looks key up in the response cache. Cache failures are logged and
// treated as a miss.
func (a *API) cached(ctx context.Context, log *zap.Logger, key string) ([]byte, bool) {
	if a.cache == nil {
		return nil, false
	}

	body, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		a.metrics.ObserveCache(metrics.CacheHit)
		return body, true
	case cache.IsCacheMiss(err):
		a.metrics.ObserveCache(metrics.CacheMiss)
	default:
		a.metrics.ObserveCache(metrics.CacheError)
		log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}
