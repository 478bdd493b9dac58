package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// CompressionConfig holds configuration for the compression middleware
type CompressionConfig struct {
	// Level is the gzip compression level (1-9, default 6)
	Level int
	// MinSize is the minimum size of the first write that turns compression on
	MinSize int
	// ContentTypes lists the content type prefixes that are compressed
	ContentTypes []string
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		Level:        gzip.DefaultCompression,
		MinSize:      1024,
		ContentTypes: []string{"application/json", "text/plain"},
	}
}

// Compression creates a compression middleware with default configuration
func Compression() Middleware {
	return CompressionWithConfig(DefaultCompressionConfig())
}

// CompressionWithConfig gzips responses for clients that accept it. The
// decision is made on the first write, once the handler has set its
// headers and the size of that write is known.
func CompressionWithConfig(config CompressionConfig) Middleware {
	gzipPool := &sync.Pool{
		New: func() interface{} {
			writer, err := gzip.NewWriterLevel(io.Discard, config.Level)
			if err != nil {
				writer = gzip.NewWriter(io.Discard)
			}
			return writer
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !acceptsGzip(r) {
				next.ServeHTTP(w, r)
				return
			}

			gzw := &gzipResponseWriter{
				ResponseWriter: w,
				gzipPool:       gzipPool,
				config:         config,
			}
			defer gzw.Close()

			next.ServeHTTP(gzw, r)
		})
	}
}

func acceptsGzip(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		enc, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(enc, "gzip") {
			return true
		}
	}
	return false
}

// gzipResponseWriter holds back the status line until the first write so
// the encoding headers can still be changed.
type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
	gzipPool   *sync.Pool
	config     CompressionConfig
	status     int
	decided    bool
}

// WriteHeader records the status; it is sent with the first write.
func (gzw *gzipResponseWriter) WriteHeader(statusCode int) {
	if gzw.decided {
		return
	}
	if gzw.status == 0 {
		gzw.status = statusCode
	}
}

// Write compresses data if compression is enabled
func (gzw *gzipResponseWriter) Write(b []byte) (int, error) {
	if !gzw.decided {
		gzw.decide(len(b))
	}
	if gzw.gzipWriter != nil {
		return gzw.gzipWriter.Write(b)
	}
	return gzw.ResponseWriter.Write(b)
}

func (gzw *gzipResponseWriter) decide(size int) {
	gzw.decided = true
	status := gzw.status
	if status == 0 {
		status = http.StatusOK
	}

	h := gzw.ResponseWriter.Header()
	if gzw.shouldCompress(h, status, size) {
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")

		gzw.gzipWriter = gzw.gzipPool.Get().(*gzip.Writer)
		gzw.gzipWriter.Reset(gzw.ResponseWriter)
	}

	gzw.ResponseWriter.WriteHeader(status)
}

func (gzw *gzipResponseWriter) shouldCompress(h http.Header, status, size int) bool {
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	if size < gzw.config.MinSize || h.Get("Content-Encoding") != "" {
		return false
	}

	contentType := h.Get("Content-Type")
	for _, allowed := range gzw.config.ContentTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}

// Close sends a pending status line and flushes the gzip stream.
func (gzw *gzipResponseWriter) Close() error {
	if !gzw.decided {
		gzw.decided = true
		if gzw.status != 0 {
			gzw.ResponseWriter.WriteHeader(gzw.status)
		}
	}

	if gzw.gzipWriter != nil {
		err := gzw.gzipWriter.Close()
		gzw.gzipPool.Put(gzw.gzipWriter)
		gzw.gzipWriter = nil
		return err
	}
	return nil
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (gzw *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return gzw.ResponseWriter
}
