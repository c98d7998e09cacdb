// Package api exposes the HTTP boundaries of the fitting room: photo
// upload, try-on generation, the shopping assistant and the operational
// automation webhook.
package api

import (
	"context"

	"github.com/styleshop/fitting-room/generator"
	"github.com/styleshop/fitting-room/models"
	"github.com/styleshop/fitting-room/photostore"
	"github.com/styleshop/fitting-room/recorder"
	"github.com/styleshop/fitting-room/shop"
)

// AssistantService answers shopper messages. Implemented by the Gemini
// assistant; tests supply a fake.
type AssistantService interface {
	Respond(ctx context.Context, req models.AssistantRequest) (models.AssistantResponse, error)
}

// Server bundles the pipeline collaborators behind the HTTP handlers.
type Server struct {
	Uploader  photostore.Uploader
	Generator generator.Generator
	Recorder  *recorder.Recorder
	Assistant AssistantService
	Shop      *shop.Store
}
