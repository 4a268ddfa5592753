package routes

import (
	"tradelink_server/controllers"
	"tradelink_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up profile routes under /profile.
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/profile").Subrouter()

	profileRouter.HandleFunc("", controller.HandleAddProfile).Methods("POST")
	profileRouter.HandleFunc("", controller.HandleUpdateProfile).Methods("PUT")
	profileRouter.HandleFunc("", controller.HandleDeleteProfile).Methods("DELETE")
	profileRouter.HandleFunc("/tradesmen", controller.HandleBrowseTradesmen).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
}
