package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"tradelink_server/config"
	"tradelink_server/middleware"
	"tradelink_server/routes"
	"tradelink_server/services"
	"tradelink_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Presence and notifications back every realtime push
	presence := services.NewPresenceRegistry()
	notifier := services.NewNotificationService(presence)

	// Stores
	engagementStore := services.NewDynamoEngagementStore(dynamoService)
	messageStore := services.NewDynamoMessageStore(dynamoService)
	profileStore := services.NewDynamoProfileStore(dynamoService)

	// Services
	engagementService := &services.EngagementService{Store: engagementStore, Notifier: notifier}
	chatService := &services.ChatService{Messages: messageStore, Profiles: profileStore, Notifier: notifier}
	userProfileService := &services.UserProfileService{Store: profileStore}
	s3Service := services.NewS3Service(cfg.AWSRegion, cfg.S3Bucket)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to TradeLink")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Socket.IO server for realtime delivery
	socketServer := socket.NewServer(presence)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// All API routes sit behind JWT auth
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	routes.RegisterEngagementRoutes(api, engagementService)
	routes.RegisterChatRoutes(api, chatService)
	routes.RegisterUserProfileRoutes(api, userProfileService)
	routes.RegisterS3Routes(api, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
