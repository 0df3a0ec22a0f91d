// Package httpapi defines the uniform response envelope both services render.
//
// Every response, success or failure, carries the same four fields so that API
// consumers never need per-endpoint parsing:
//
//	{"success": true, "errorCode": "", "message": "...", "data": {...}}
package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given HTTP status and stable error code.
func Fail(w http.ResponseWriter, status int, errorCode, message string) {
	write(w, status, Envelope{Success: false, ErrorCode: errorCode, Message: message})
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, errorCode, message string) {
	Fail(w, http.StatusNotFound, errorCode, message)
}

func write(w http.ResponseWriter, status int, e Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}
