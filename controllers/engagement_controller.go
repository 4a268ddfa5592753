package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tradelink_server/middleware"
	"tradelink_server/models"
	"tradelink_server/services"

	"github.com/gorilla/mux"
)

// EngagementController exposes the hire lifecycle over HTTP.
type EngagementController struct {
	Engagements *services.EngagementService
}

func NewEngagementController(service *services.EngagementService) *EngagementController {
	return &EngagementController{Engagements: service}
}

// HandleRequestHire - POST /api/hire/request
func (c *EngagementController) HandleRequestHire(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TradesmanID    string `json:"tradesmanId"`
		JobDescription string `json:"jobDescription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}

	engagement, err := c.Engagements.RequestEngagement(r.Context(),
		middleware.UserID(r.Context()), middleware.Role(r.Context()),
		request.TradesmanID, request.JobDescription)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Hire request sent", engagement)
}

// HandleRespondHire - POST /api/hire/respond
func (c *EngagementController) HandleRespondHire(w http.ResponseWriter, r *http.Request) {
	var request struct {
		HireID string `json:"hireId"`
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}

	engagement, err := c.Engagements.RespondEngagement(r.Context(),
		middleware.UserID(r.Context()), middleware.Role(r.Context()),
		request.HireID, request.Action)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Hire "+engagement.Status, engagement)
}

// HandleRequestCompletion - POST /api/hire/request-completion
func (c *EngagementController) HandleRequestCompletion(w http.ResponseWriter, r *http.Request) {
	var request struct {
		HireID string `json:"hireId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}

	engagement, err := c.Engagements.RequestCompletion(r.Context(),
		middleware.UserID(r.Context()), middleware.Role(r.Context()), request.HireID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Completion requested", engagement)
}

// HandleConfirmCompletion - POST /api/hire/confirm-completion
func (c *EngagementController) HandleConfirmCompletion(w http.ResponseWriter, r *http.Request) {
	var request struct {
		HireID  string `json:"hireId"`
		Confirm *bool  `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Confirm == nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "hireId and confirm required"})
		return
	}

	engagement, err := c.Engagements.ConfirmCompletion(r.Context(),
		middleware.UserID(r.Context()), middleware.Role(r.Context()),
		request.HireID, *request.Confirm)
	if err != nil {
		respondError(w, err)
		return
	}

	message := "Completion denied, hire stays accepted"
	if engagement.Status == models.StatusCompleted {
		message = "Hire marked as completed"
	}
	respondSuccess(w, http.StatusOK, message, engagement)
}

// HandleHireStatus - GET /api/hire/status/{userId}
// Latest hire record between the logged-in user and the given user; data is
// null when the two have no hire history.
func (c *EngagementController) HandleHireStatus(w http.ResponseWriter, r *http.Request) {
	otherID := mux.Vars(r)["userId"]

	engagement, err := c.Engagements.GetLatestEngagement(r.Context(), middleware.UserID(r.Context()), otherID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Hire status fetched", engagement)
}

// HandleListHires - GET /api/hire/list?type=all|active|completed
func (c *EngagementController) HandleListHires(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("type")
	if filter == "" {
		filter = models.FilterAll
	}

	engagements, err := c.Engagements.ListEngagements(r.Context(),
		middleware.UserID(r.Context()), middleware.Role(r.Context()), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Hires fetched", engagements)
}

func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}
