// Package http provides the JSON response helpers used by the kernel and by
// application handlers. Errors use a uniform envelope:
//
//	{"errors": ["message", ...]}
package http

import (
	"encoding/json"
	"net/http"
)

// Response wraps http.ResponseWriter with JSON helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// JSON sends a JSON response with the given status.
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// OK sends 200 with data as the body.
func (res *Response) OK(data any) {
	res.JSON(http.StatusOK, data)
}

// Created sends 201 with data as the body.
func (res *Response) Created(data any) {
	res.JSON(http.StatusCreated, data)
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends the error envelope with the given status.
//
//	res.Error(http.StatusNotFound, "user not found")
func (res *Response) Error(status int, messages ...string) {
	if len(messages) == 0 {
		messages = []string{http.StatusText(status)}
	}
	res.JSON(status, map[string][]string{"errors": messages})
}

// BadRequest sends 400 with the error envelope.
func (res *Response) BadRequest(messages ...string) {
	res.Error(http.StatusBadRequest, messages...)
}

// NotFound sends 404 with the error envelope.
func (res *Response) NotFound(messages ...string) {
	res.Error(http.StatusNotFound, messages...)
}

// ServerError sends 500 with the error envelope.
func (res *Response) ServerError(messages ...string) {
	res.Error(http.StatusInternalServerError, messages...)
}
