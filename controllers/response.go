package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	errs "tradelink_server/pkg/errors"
)

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type pageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

type pagedData struct {
	Meta pageMeta    `json:"meta"`
	Data interface{} `json:"data"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

// respondError maps the service error kind to a status code. Internal
// failures are logged with their cause but answered generically.
func respondError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("❌ Internal error: %v", err)
		message = "Server error"
	}
	respondJSON(w, status, apiResponse{Success: false, Message: message})
}

func respondPaginated(w http.ResponseWriter, message string, items interface{}, total, page, perPage int) {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	respondSuccess(w, http.StatusOK, message, pagedData{
		Meta: pageMeta{Total: total, Page: page, PerPage: perPage, TotalPages: totalPages},
		Data: items,
	})
}

// parsePagination reads ?page and ?limit with the conventional defaults.
func parsePagination(r *http.Request) (int, int) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
