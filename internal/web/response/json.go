package response

import (
	"encoding/json"
	"net/http"
)

// ContentTypeJSON is the Content-Type of every body this package writes.
const ContentTypeJSON = "application/json; charset=utf-8"

// RenderJSON encodes v as the response body with the given status.
func RenderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// RenderRaw writes an already encoded JSON body.
func RenderRaw(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)
	w.Write(body)
}

// RenderOK renders v with 200 OK.
func RenderOK(w http.ResponseWriter, v interface{}) {
	RenderJSON(w, http.StatusOK, v)
}
