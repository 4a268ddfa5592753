package controllers

import (
	"encoding/json"
	"net/http"

	"tradelink_server/middleware"
	"tradelink_server/models"
	"tradelink_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController exposes profile CRUD and tradesman discovery.
type UserProfileController struct {
	Profiles *services.UserProfileService
}

func NewUserProfileController(service *services.UserProfileService) *UserProfileController {
	return &UserProfileController{Profiles: service}
}

// HandleAddProfile - POST /api/profile
// The profile is created for the authenticated user; userId and role come
// from the token, not the body.
func (c *UserProfileController) HandleAddProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}
	profile.UserID = middleware.UserID(r.Context())
	profile.Role = middleware.Role(r.Context())

	created, err := c.Profiles.AddProfile(r.Context(), profile)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Profile created", created)
}

// HandleGetProfile - GET /api/profile/{userId}
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := c.Profiles.GetProfile(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Profile fetched", profile)
}

// HandleUpdateProfile - PUT /api/profile
func (c *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}

	profile, err := c.Profiles.UpdateProfile(r.Context(), middleware.UserID(r.Context()), updates)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Profile updated", profile)
}

// HandleDeleteProfile - DELETE /api/profile
func (c *UserProfileController) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := c.Profiles.DeleteProfile(r.Context(), middleware.UserID(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Profile deleted", nil)
}

// HandleBrowseTradesmen - GET /api/profile/tradesmen?trade&location
func (c *UserProfileController) HandleBrowseTradesmen(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tradesmen, err := c.Profiles.BrowseTradesmen(r.Context(), query.Get("trade"), query.Get("location"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Tradesmen fetched", tradesmen)
}
