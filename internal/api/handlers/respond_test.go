package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondConfigurationInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConfigurationInvalid(rec)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"ConfigurationInvalid"}`, rec.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Total int64 `json:"total"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"total":1,"extra":true}`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"branchId": "42", "bad": "-1"})

	id, err := PathID(req, "branchId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathID(req, "bad")
	assert.Error(t, err)

	_, err = PathID(req, "missing")
	assert.Error(t, err)
}
