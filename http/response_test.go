package http_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	sugarhttp "github.com/km-arc/go-sugar/http"
)

func TestResponse_OK(t *testing.T) {
	rec := httptest.NewRecorder()
	sugarhttp.NewResponse(rec).OK(map[string]string{"hello": "world"})

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body: got %v", body)
	}
}

func TestResponse_ErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	sugarhttp.NewResponse(rec).Error(nethttp.StatusBadRequest, "name is required", "email is required")

	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(body["errors"]) != 2 {
		t.Errorf("envelope: got %v", body)
	}
}

func TestResponse_Error_DefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	sugarhttp.NewResponse(rec).NotFound()

	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(body["errors"]) != 1 || body["errors"][0] != "Not Found" {
		t.Errorf("default message: got %v", body)
	}
}

func TestResponse_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	sugarhttp.NewResponse(rec).NoContent()
	if rec.Code != nethttp.StatusNoContent {
		t.Fatalf("status: got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("204 must not carry a body")
	}
}
