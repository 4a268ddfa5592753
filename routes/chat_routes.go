package routes

import (
	"tradelink_server/controllers"
	"tradelink_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the messaging routes under /chat.
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/chat").Subrouter()

	chatRouter.HandleFunc("/send", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/conversation/{userId}", controller.HandleConversation).Methods("GET")
	chatRouter.HandleFunc("/list", controller.HandleConversationList).Methods("GET")
	chatRouter.HandleFunc("/mark-read", controller.HandleMarkRead).Methods("PUT")
}
