package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// Response is the envelope of every API response.
type Response struct {
	Success    bool         `json:"success"`
	Data       interface{}  `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Count      *int         `json:"count,omitempty"`
	Token      string       `json:"token,omitempty"`
	User       *models.User `json:"user,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errInvalidJSON is reported for request bodies that cannot be decoded.
var errInvalidJSON = &services.Error{Kind: services.KindValidation, Message: "Invalid JSON body"}

func sendJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func sendData(w http.ResponseWriter, status int, data interface{}) {
	sendJSON(w, status, Response{Success: true, Data: data})
}

func sendList(w http.ResponseWriter, data interface{}, count int, page *Pagination) {
	sendJSON(w, http.StatusOK, Response{Success: true, Data: data, Count: &count, Pagination: page})
}

// statusOf maps a service error to its HTTP status.
func statusOf(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// sendError writes the failure envelope for err. Server side failures are
// logged and their cause is not exposed.
func sendError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	}
	middleware.WriteError(w, status, services.MessageOf(err))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errInvalidJSON
}

// callerOf returns the identity attached by the auth middleware.
func callerOf(r *http.Request) (services.Identity, error) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return services.Identity{}, services.ErrUnauthenticated
	}
	return id, nil
}

// queryInt returns the positive integer query parameter name, or 0.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
