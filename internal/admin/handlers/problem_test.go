package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	e "github.com/testnest/admin/internal/admin/errors"
)

func TestProblemFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		title  string
		detail string
	}{
		{"validation", e.Validationf("Bad", "bad"), http.StatusBadRequest, "Validation Error", "Validation failed."},
		{"aggregate", e.Combine(e.Validationf("A", "a"), e.Validationf("B", "b")), http.StatusBadRequest, "Validation Error", "Validation failed."},
		{"not found", e.NotFoundf("missing"), http.StatusNotFound, "Not Found", "Resource not found."},
		{"storage not found", fmt.Errorf("get: %w", e.ErrNotFound), http.StatusNotFound, "Not Found", "Resource not found."},
		{"conflict", e.Conflictf("Dup", "dup"), http.StatusConflict, "Conflict", "Resource conflict."},
		{"unauthorized", e.Unauthorizedf("nope"), http.StatusUnauthorized, "Unauthorized", "Operation not permitted."},
		{"internal", fmt.Errorf("connection refused"), http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := problemFor(tt.err)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.detail, p.Detail)
			if tt.status == http.StatusInternalServerError {
				assert.Empty(t, p.Errors)
			} else {
				assert.NotEmpty(t, p.Errors)
			}
		})
	}
}

func TestWriteProblemLogsInternalErrors(t *testing.T) {
	core, recorded := observer.New(zap.ErrorLevel)
	rec := httptest.NewRecorder()

	writeProblem(rec, zap.New(core), fmt.Errorf("db is down"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "db is down")
	assert.Equal(t, 1, recorded.FilterMessage("Internal server error").Len())
}

func TestParseListQuery(t *testing.T) {
	q := url.Values{
		"pageNumber": {"3"},
		"pageSize":   {"500"},
		"sortBy":     {"city"},
		"sortOrder":  {"DESC"},
		"city":       {"Makati"},
		"isPrimary":  {"true"},
		"unknown":    {"x"},
	}
	got, err := parseListQuery(q, []filter{contains("city"), matchBool("isPrimary"), matchID("establishmentId")})
	require.NoError(t, err)

	assert.Equal(t, 3, got.spec.PageNumber)
	assert.Equal(t, 100, got.spec.PageSize)
	assert.Equal(t, "desc", got.spec.SortOrder)
	assert.Equal(t, "Makati", got.spec.Contains["city"])
	assert.Equal(t, true, got.spec.Equals["isPrimary"])
	assert.NotContains(t, got.spec.Equals, "establishmentId")

	_, err = parseListQuery(url.Values{"establishmentId": {"nope"}}, []filter{matchID("establishmentId")})
	assert.Equal(t, e.Validation, e.TypeOf(err))
}

func TestNewPageLinks(t *testing.T) {
	q, err := parseListQuery(url.Values{"pageNumber": {"2"}, "pageSize": {"10"}, "name": {"face book"}}, []filter{contains("name")})
	require.NoError(t, err)

	page := newPage("/api/socialmediaplatforms", q, 25, []any{})

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "/api/socialmediaplatforms?pageNumber=1&pageSize=10&sortOrder=asc&name=face+book", page.Links.First)
	assert.Equal(t, "/api/socialmediaplatforms?pageNumber=3&pageSize=10&sortOrder=asc&name=face+book", page.Links.Last)
	require.NotNil(t, page.Links.Next)
	require.NotNil(t, page.Links.Previous)
	assert.Equal(t, "/api/socialmediaplatforms?pageNumber=1&pageSize=10&sortOrder=asc&name=face+book", *page.Links.Previous)

	last, err := parseListQuery(url.Values{"pageNumber": {"3"}}, nil)
	require.NoError(t, err)
	assert.Nil(t, newPage("/x", last, 25, nil).Links.Next)
}
