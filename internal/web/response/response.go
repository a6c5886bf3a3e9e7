// Package response renders the JSON envelopes every endpoint speaks.
// Success payloads go through JSON or Raw; failures share the
// ErrorResponse shape so clients can always read error/message/code.
package response

import (
	"encoding/json"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON encodes v as the response body with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// Raw writes an already-encoded JSON document verbatim. Dictionary and
// category files are served byte-for-byte as stored, so they are not
// re-encoded through Go values.
func Raw(w http.ResponseWriter, statusCode int, data []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	w.Write(data)
}
