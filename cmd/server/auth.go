package main

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const apiKeyHeader = "X-API-Key"

type apiKeyAuth struct {
	keys [][]byte
}

func newAPIKeyAuth(keys []string) *apiKeyAuth {
	a := &apiKeyAuth{}
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		a.keys = append(a.keys, []byte(k))
	}
	return a
}

// enabled reports whether any key is configured; without keys every request
// is let through.
func (a *apiKeyAuth) enabled() bool {
	return len(a.keys) > 0
}

func (a *apiKeyAuth) validKey(provided string) bool {
	if provided == "" {
		return false
	}
	ok := 0
	for _, k := range a.keys {
		ok |= subtle.ConstantTimeCompare(k, []byte(provided))
	}
	return ok == 1
}

func (a *apiKeyAuth) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled() {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			key = r.URL.Query().Get("key")
		}
		if !a.validKey(key) {
			writeError(w, http.StatusUnauthorized, "missing or invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
