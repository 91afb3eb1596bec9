package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/pricecalc/internal/pricing"
	"github.com/Simplici0/pricecalc/internal/scenario"
)

const maxBodyBytes = 1 << 20

// number is a float64 that encodes infinities and NaN as JSON null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

type errorResponse struct {
	Error string `json:"error"`
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeJSON encodes v fully before any header is sent, so an encoding
// failure still yields a well-formed 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := encodeJSON(v)
	if err != nil {
		writeBody(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`+"\n"))
		return
	}
	writeBody(w, status, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads exactly one JSON object into dst, rejecting unknown fields
// and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := scenario.DecodeStrictJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func isClientError(err error) bool {
	return scenario.IsFieldError(err) ||
		errors.Is(err, pricing.ErrMarginOutOfRange) ||
		errors.Is(err, pricing.ErrUnknownMode) ||
		errors.Is(err, pricing.ErrUnknownTarget)
}

// fail maps calculation and validation errors to 400 and anything else to 500.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if isClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

const overflowMessage = "result overflows the representable range; use smaller inputs"

// respond writes v as a 200 JSON response. Results that overflow to
// infinity or NaN cannot be encoded and are reported as a 400.
func (s *server) respond(w http.ResponseWriter, r *http.Request, v any) {
	body, err := encodeJSON(v)
	if err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) {
			writeError(w, http.StatusBadRequest, overflowMessage)
			return
		}
		s.fail(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	writeBody(w, http.StatusOK, body)
}
