package controllers

import (
	"encoding/json"
	"net/http"

	"tradelink_server/middleware"
	"tradelink_server/services"

	"github.com/gorilla/mux"
)

// ChatController exposes messaging and conversation listing over HTTP.
type ChatController struct {
	Chat *services.ChatService
}

func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{Chat: service}
}

// HandleSendMessage - POST /api/chat/send
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ReceiverID string `json:"receiverId"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}

	message, err := c.Chat.SendMessage(r.Context(), middleware.UserID(r.Context()), request.ReceiverID, request.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Message sent", message)
}

// HandleConversation - GET /api/chat/conversation/{userId}?page&limit
// Messages between the logged-in user and the given partner, oldest first.
func (c *ChatController) HandleConversation(w http.ResponseWriter, r *http.Request) {
	partnerID := mux.Vars(r)["userId"]
	page, limit := parsePagination(r)

	messages, total, err := c.Chat.GetConversationMessages(r.Context(), middleware.UserID(r.Context()), partnerID, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPaginated(w, "Conversation fetched", messages, total, page, limit)
}

// HandleConversationList - GET /api/chat/list?page&limit
// One entry per chat partner, most recent conversation first.
func (c *ChatController) HandleConversationList(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	conversations, total, err := c.Chat.GetConversationList(r.Context(), middleware.UserID(r.Context()), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPaginated(w, "Conversations fetched", conversations, total, page, limit)
}

// HandleMarkRead - PUT /api/chat/mark-read
func (c *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationWith string `json:"conversationWith"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request body"})
		return
	}

	updated, err := c.Chat.MarkRead(r.Context(), middleware.UserID(r.Context()), request.ConversationWith)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Messages marked as read", map[string]int{"updatedCount": updated})
}
