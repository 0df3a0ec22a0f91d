package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var e Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "done", map[string]int{"n": 1})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	e := decode(t, rec)
	assert.True(t, e.Success)
	assert.Empty(t, e.ErrorCode)
	assert.Equal(t, "done", e.Message)
	assert.NotNil(t, e.Data)
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, 400, "VALIDATION_ERROR", "bad input")

	assert.Equal(t, 400, rec.Code)

	e := decode(t, rec)
	assert.False(t, e.Success)
	assert.Equal(t, "VALIDATION_ERROR", e.ErrorCode)
	assert.Equal(t, "bad input", e.Message)
	assert.Nil(t, e.Data)
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "ORDER_NOT_FOUND", "order does not exist")

	assert.Equal(t, 404, rec.Code)
	e := decode(t, rec)
	assert.False(t, e.Success)
	assert.Equal(t, "ORDER_NOT_FOUND", e.ErrorCode)
}
