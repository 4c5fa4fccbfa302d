package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestJSON(t *testing.T) {
	is := is.New(t)
	rec := httptest.NewRecorder()

	JSONWithMeta(rec, http.StatusOK, []int{1, 2}, &Meta{Page: 1, PerPage: 2, Total: 3, TotalPages: 2, Count: 2})

	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Success bool  `json:"success"`
		Data    []int `json:"data"`
		Meta    Meta  `json:"meta"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&body))
	is.True(body.Success)
	is.Equal(body.Data, []int{1, 2})
	is.Equal(body.Meta, Meta{Page: 1, PerPage: 2, Total: 3, TotalPages: 2, Count: 2})
}

func TestError(t *testing.T) {
	is := is.New(t)
	rec := httptest.NewRecorder()

	NotFound(rec, "debt not found")

	is.Equal(rec.Code, http.StatusNotFound)
	var body APIResponse
	is.NoErr(json.NewDecoder(rec.Body).Decode(&body))
	is.True(!body.Success)
	is.Equal(body.Error.Code, "NOT_FOUND")
	is.Equal(body.Error.Message, "debt not found")
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		write  func(http.ResponseWriter, string)
		status int
		code   string
	}{
		{BadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{Unauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{Forbidden, http.StatusForbidden, "FORBIDDEN"},
		{Conflict, http.StatusConflict, "CONFLICT"},
		{UnprocessableEntity, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{InternalError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			is := is.New(t)
			rec := httptest.NewRecorder()

			tt.write(rec, "nope")

			is.Equal(rec.Code, tt.status)
			var body APIResponse
			is.NoErr(json.NewDecoder(rec.Body).Decode(&body))
			is.Equal(body.Error.Code, tt.code)
		})
	}
}
