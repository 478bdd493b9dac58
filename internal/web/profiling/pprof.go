// Package profiling serves the net/http/pprof endpoints and a runtime stats
// summary from a chi router.
//
// The endpoints expose goroutine stacks and heap contents. Mount them only on
// servers that are not reachable from untrusted networks.
package profiling

import (
	"net/http"
	"net/http/pprof"
	"runtime"

	"github.com/go-chi/chi/v5"

	"github.com/conduit-lang/classview/internal/web/response"
)

// DefaultPath is where the endpoints are mounted unless Config.Path says
// otherwise.
const DefaultPath = "/debug/pprof"

// Config holds profiling configuration
type Config struct {
	// Path is the URL path prefix for profiling endpoints
	Path string

	// BlockRate is passed to runtime.SetBlockProfileRate; zero leaves block
	// profiling off
	BlockRate int

	// MutexFraction is passed to runtime.SetMutexProfileFraction; zero leaves
	// mutex profiling off
	MutexFraction int
}

// DefaultConfig returns the config used by the serve command.
func DefaultConfig() Config {
	return Config{Path: DefaultPath}
}

// RegisterRoutes registers the profiling routes on router under config.Path.
func RegisterRoutes(router chi.Router, config Config) {
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.BlockRate > 0 {
		runtime.SetBlockProfileRate(config.BlockRate)
	}
	if config.MutexFraction > 0 {
		runtime.SetMutexProfileFraction(config.MutexFraction)
	}

	router.Route(config.Path, func(r chi.Router) {
		r.HandleFunc("/", pprof.Index)
		r.HandleFunc("/cmdline", pprof.Cmdline)
		r.HandleFunc("/profile", pprof.Profile)
		r.HandleFunc("/symbol", pprof.Symbol)
		r.HandleFunc("/trace", pprof.Trace)
		r.Get("/runtime", StatsHandler)

		for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			r.Handle("/"+name, pprof.Handler(name))
		}
	})
}

// Handler returns a router serving only the profiling routes. It expects
// the full request path, so mount it with a wildcard pattern rather than
// chi's Mount.
func Handler(config Config) http.Handler {
	router := chi.NewRouter()
	RegisterRoutes(router, config)
	return router
}

// Stats is a summary of the process runtime.
type Stats struct {
	Goroutines int         `json:"goroutines"`
	Memory     MemoryStats `json:"memory"`
	CPU        CPUStats    `json:"cpu"`
}

// MemoryStats is the subset of runtime.MemStats worth watching.
type MemoryStats struct {
	Alloc       uint64 `json:"alloc"`
	TotalAlloc  uint64 `json:"totalAlloc"`
	Sys         uint64 `json:"sys"`
	HeapObjects uint64 `json:"heapObjects"`
	NumGC       uint32 `json:"numGC"`
}

// CPUStats describes the scheduler's view of the machine.
type CPUStats struct {
	NumCPU     int   `json:"numCPU"`
	GOMAXPROCS int   `json:"gomaxprocs"`
	NumCgoCall int64 `json:"numCgoCall"`
}

// RuntimeStats returns current runtime statistics
func RuntimeStats() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Stats{
		Goroutines: runtime.NumGoroutine(),
		Memory: MemoryStats{
			Alloc:       m.Alloc,
			TotalAlloc:  m.TotalAlloc,
			Sys:         m.Sys,
			HeapObjects: m.HeapObjects,
			NumGC:       m.NumGC,
		},
		CPU: CPUStats{
			NumCPU:     runtime.NumCPU(),
			GOMAXPROCS: runtime.GOMAXPROCS(0),
			NumCgoCall: runtime.NumCgoCall(),
		},
	}
}

// StatsHandler serves RuntimeStats as JSON.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	response.RenderJSON(w, http.StatusOK, RuntimeStats())
}
