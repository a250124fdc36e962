package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alfagnish/supplychain-api/internal/models"
)

// writeJSON serialises v as JSON and writes it to the response with the
// given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a standard JSON error response of the form
// {"detail": "message"}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeText writes a plain-text body. The insert and upload endpoints answer
// with bare strings rather than JSON.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

// readBody returns the request body with surrounding whitespace trimmed.
func readBody(r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(b), nil
}

// errNotObject is returned for a JSON body that is neither an object nor an
// array.
var errNotObject = errors.New("body must be a JSON object or array")

// decodeFields parses an add payload. An empty body or a JSON array yields
// empty fields; any other top-level value than an object is rejected.
func decodeFields(body []byte) (models.Fields, error) {
	if len(body) == 0 {
		return models.Fields{}, nil
	}

	switch body[0] {
	case '{':
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.New("trailing data after JSON object")
		}
		return models.FieldsFromMap(m), nil
	case '[':
		var items []interface{}
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return models.Fields{}, nil
	}
	return nil, errNotObject
}
