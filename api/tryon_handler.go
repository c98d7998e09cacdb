package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/styleshop/fitting-room/generator"
	"github.com/styleshop/fitting-room/utils"
)

// TryOnRequest is the generation boundary request body.
type TryOnRequest struct {
	UserPhotoURL    string `json:"userPhotoUrl"`
	ProductPhotoURL string `json:"productPhotoUrl"`
	ProductName     string `json:"productName"`
}

// TryOnResponse carries the generated image URL.
type TryOnResponse struct {
	ResultURL string `json:"resultUrl"`
}

// TryOnHandler runs one generation: it validates and probes both image
// URLs, invokes the model and returns the composited image URL.
// Failures map to 400 (invalid or inaccessible input, no image
// produced), 402 (quota), 429 (rate limit) or 500.
func (s *Server) TryOnHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Virtual Try-On API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TryOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.UserPhotoURL == "" || req.ProductPhotoURL == "" {
		utils.RespondError(w, &logMessageBuilder, "Missing required fields: userPhotoUrl and productPhotoUrl are required", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Try-On Request: product=%s user=%s", req.ProductName, req.UserPhotoURL))

	// Generation takes tens of seconds; give it its own generous timeout.
	genCtx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	resultURL, err := s.Generator.Generate(genCtx, req.UserPhotoURL, req.ProductPhotoURL, req.ProductName)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), generator.HTTPStatus(err))
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Generation successful")
	utils.RespondJSON(w, http.StatusOK, TryOnResponse{ResultURL: resultURL})
}
