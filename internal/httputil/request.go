package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"yogablocks/internal/config"
)

// maxBodyBytes leaves room for JSON escaping of a maximum-size document body.
const maxBodyBytes = 4 * config.MaxContentLength

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped; an oversized body fails with a wrapped *http.MaxBytesError.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// QueryInt reads a non-negative integer query parameter.
// An absent parameter yields def; a malformed or negative one is an error.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}
