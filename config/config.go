package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI      string
	DBName        string
	Port          string
	AWSRegion     string
	AWSBucketName string

	// AI gateway for try-on image generation (OpenAI-style chat completions).
	AIGatewayURL    string
	AIGatewayAPIKey string
	AIImageModel    string

	// Gemini SDK key used by the shopping assistant.
	GeminiAPIKey string

	// TryOnProvider selects "gateway" (real generation) or "simulation"
	// (canned results from the simulations collection).
	TryOnProvider string

	// ImageDelivery selects how images reach the gateway: "url" passes the
	// public URLs through, "inline" prefetches and sends base64 data URLs.
	ImageDelivery string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "fittingroom"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "eu-west-1"
	}

	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
	if AWSBucketName == "" {
		AWSBucketName = "user-photos"
	}

	AIGatewayURL = os.Getenv("AI_GATEWAY_URL")
	if AIGatewayURL == "" {
		AIGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	}

	AIGatewayAPIKey = os.Getenv("AI_GATEWAY_API_KEY")

	AIImageModel = os.Getenv("AI_IMAGE_MODEL")
	if AIImageModel == "" {
		AIImageModel = "google/gemini-2.5-flash-image-preview"
	}

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	TryOnProvider = os.Getenv("TRYON_PROVIDER")
	if TryOnProvider == "" {
		TryOnProvider = "gateway"
	}

	ImageDelivery = os.Getenv("IMAGE_DELIVERY")
	if ImageDelivery == "" {
		ImageDelivery = "url"
	}
}
