package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonHandler(body string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func gzipRequest(enc string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/get-filtered-classes", nil)
	if enc != "" {
		req.Header.Set("Accept-Encoding", enc)
	}
	return req
}

func TestCompressionMiddleware(t *testing.T) {
	body := `{"classes":"` + strings.Repeat("Actor ", 400) + `"}`

	rec := httptest.NewRecorder()
	Compression()(jsonHandler(body, http.StatusOK)).ServeHTTP(rec, gzipRequest("gzip, deflate"))

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("Expected Content-Encoding: gzip")
	}
	if rec.Header().Get("Vary") != "Accept-Encoding" {
		t.Error("Expected Vary: Accept-Encoding")
	}

	gr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to create gzip reader: %v", err)
	}
	defer gr.Close()

	decompressed, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if string(decompressed) != body {
		t.Error("Decompressed content does not match original")
	}
}

func TestCompressionKeepsStatus(t *testing.T) {
	body := strings.Repeat("x", 2048)

	rec := httptest.NewRecorder()
	Compression()(jsonHandler(body, http.StatusBadRequest)).ServeHTTP(rec, gzipRequest("gzip"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Error("expected compressed error body")
	}
}

func TestCompressionSkipped(t *testing.T) {
	large := strings.Repeat("x", 2048)

	tests := []struct {
		name    string
		enc     string
		handler http.Handler
		body    string
	}{
		{"no accept-encoding", "", jsonHandler(large, http.StatusOK), large},
		{"other encoding", "br", jsonHandler(large, http.StatusOK), large},
		{"small body", "gzip", jsonHandler(`{"ok":true}`, http.StatusOK), `{"ok":true}`},
		{
			"content type not listed", "gzip",
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.Write([]byte(large))
			}),
			large,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Compression()(tt.handler).ServeHTTP(rec, gzipRequest(tt.enc))

			if rec.Header().Get("Content-Encoding") != "" {
				t.Errorf("unexpected Content-Encoding %q", rec.Header().Get("Content-Encoding"))
			}
			if rec.Body.String() != tt.body {
				t.Error("body was modified")
			}
		})
	}
}

func TestCompressionNoBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	Compression()(handler).ServeHTTP(rec, gzipRequest("gzip"))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("expected empty body")
	}
}

func TestAcceptsGzip(t *testing.T) {
	tests := map[string]bool{
		"gzip":               true,
		"GZIP":               true,
		"deflate, gzip;q=.5": true,
		"br":                 false,
		"gzipx":              false,
		"":                   false,
	}
	for header, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", header)
		if got := acceptsGzip(req); got != want {
			t.Errorf("acceptsGzip(%q) = %v, want %v", header, got, want)
		}
	}
}

func BenchmarkCompression(b *testing.B) {
	handler := Compression()(jsonHandler(strings.Repeat("Pawn ", 1000), http.StatusOK))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), gzipRequest("gzip"))
	}
}
