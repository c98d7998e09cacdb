package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/styleshop/fitting-room/api"
	"github.com/styleshop/fitting-room/assistant"
	"github.com/styleshop/fitting-room/config"
	"github.com/styleshop/fitting-room/generator"
	"github.com/styleshop/fitting-room/photostore"
	"github.com/styleshop/fitting-room/recorder"
	"github.com/styleshop/fitting-room/shop"
	"github.com/styleshop/fitting-room/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Photo storage
	uploader, err := photostore.NewS3Store(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	// Try-on generation: the real gateway, or the canned-result
	// simulation table as a fallback provider.
	var gen generator.Generator
	switch config.TryOnProvider {
	case "simulation":
		simulations := generator.NewMongoSimulations(utils.GetCollection(config.DBName, "simulations"))
		gen = generator.NewSimulationGenerator(simulations, 0)
		log.Println("Try-on provider: simulation")
	default:
		gen = generator.NewClient(config.AIGatewayURL, config.AIGatewayAPIKey,
			config.AIImageModel, generator.DeliveryStrategy(config.ImageDelivery), nil)
		log.Println("Try-on provider: gateway")
	}

	rec := recorder.New(recorder.NewMongoStore(utils.GetCollection(config.DBName, "user_results")))

	server := &api.Server{
		Uploader:  uploader,
		Generator: gen,
		Recorder:  rec,
		Assistant: assistant.New(config.GeminiAPIKey),
		Shop:      shop.NewStore(),
	}

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/upload", corsMiddleware(server.UploadHandler))
	http.HandleFunc("/try-on", corsMiddleware(server.TryOnHandler))
	http.HandleFunc("/assistant", corsMiddleware(server.AssistantHandler))
	http.HandleFunc("/webhook", corsMiddleware(server.WebhookHandler))
	http.HandleFunc("/results", corsMiddleware(server.ResultsHandler))
	http.HandleFunc("/products", corsMiddleware(server.ProductsHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
