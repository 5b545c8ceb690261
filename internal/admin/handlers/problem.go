package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	e "github.com/testnest/admin/internal/admin/errors"
)

// Problem is the error body of every failed request.
type Problem struct {
	Status int       `json:"status"`
	Title  string    `json:"title"`
	Detail string    `json:"detail"`
	Errors []e.Error `json:"errors,omitempty"`
}

// problemFor maps a failure onto its HTTP problem. Internal details are not
// exposed.
func problemFor(err error) Problem {
	f := e.FromError(err)
	switch f.Type {
	case e.Validation, e.Aggregate:
		return Problem{Status: http.StatusBadRequest, Title: "Validation Error", Detail: "Validation failed.", Errors: f.Errors}
	case e.NotFound:
		return Problem{Status: http.StatusNotFound, Title: "Not Found", Detail: "Resource not found.", Errors: f.Errors}
	case e.Conflict:
		return Problem{Status: http.StatusConflict, Title: "Conflict", Detail: "Resource conflict.", Errors: f.Errors}
	case e.Unauthorized:
		return Problem{Status: http.StatusUnauthorized, Title: "Unauthorized", Detail: "Operation not permitted.", Errors: f.Errors}
	default:
		return Problem{Status: http.StatusInternalServerError, Title: "Internal Server Error", Detail: "An unexpected error occurred."}
	}
}

func writeProblem(w http.ResponseWriter, logger *zap.Logger, err error) {
	problem := problemFor(err)
	if problem.Status == http.StatusInternalServerError {
		logger.Error("Internal server error", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRaw writes an already encoded JSON body.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// decodeJSON reads a JSON request body into v. Malformed bodies are a
// validation failure.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return e.Validationf("InvalidRequestBody", "Request body is required.")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return e.Validationf("InvalidRequestBody", "Request body is not valid JSON: %v", err)
	}
	return nil
}
