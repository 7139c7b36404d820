package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"pdarena.dev/service/apperr"
)

// adapt wraps a business-logic handler of the shape
// func(ctx, Props) (Response, error) into an http.HandlerFunc: it
// decodes the JSON request body, invokes handler, and maps the result
// to a JSON response or error envelope.
func adapt[P any, R any](handler func(ctx context.Context, props P) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var props P
		if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"code": string(apperr.DecodeError)})
			return
		}

		result, err := handler(r.Context(), props)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// adaptSlice is adapt for handlers returning a slice; it delegates to
// adapt, which infers its result type as []R.
func adaptSlice[P any, R any](handler func(ctx context.Context, props P) ([]R, error)) http.HandlerFunc {
	return adapt(handler)
}

// writeAppError maps a handler error to the HTTP status and symbolic
// code apperr assigns it; errors that are not *apperr.Error become a
// 500 with code Unknown. It does not log.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Code().HTTPStatus(), map[string]string{"code": string(appErr.Code())})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"code": string(apperr.Unknown)})
}
