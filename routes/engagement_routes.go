package routes

import (
	"tradelink_server/controllers"
	"tradelink_server/services"

	"github.com/gorilla/mux"
)

// RegisterEngagementRoutes sets up the hire lifecycle routes under /hire.
func RegisterEngagementRoutes(r *mux.Router, engagementService *services.EngagementService) {
	controller := controllers.NewEngagementController(engagementService)

	hireRouter := r.PathPrefix("/hire").Subrouter()

	hireRouter.HandleFunc("/request", controller.HandleRequestHire).Methods("POST")
	hireRouter.HandleFunc("/respond", controller.HandleRespondHire).Methods("POST")
	hireRouter.HandleFunc("/request-completion", controller.HandleRequestCompletion).Methods("POST")
	hireRouter.HandleFunc("/confirm-completion", controller.HandleConfirmCompletion).Methods("POST")
	hireRouter.HandleFunc("/status/{userId}", controller.HandleHireStatus).Methods("GET")
	hireRouter.HandleFunc("/list", controller.HandleListHires).Methods("GET")
}
