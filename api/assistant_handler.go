package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/styleshop/fitting-room/assistant"
	"github.com/styleshop/fitting-room/catalog"
	"github.com/styleshop/fitting-room/models"
	"github.com/styleshop/fitting-room/utils"
)

// AssistantHandler answers a shopper message. The shop store on the
// server is authoritative for context; the returned action is also
// applied to it so the session state and the reply stay consistent.
func (s *Server) AssistantHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Assistant API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		utils.RespondError(w, &logMessageBuilder, "message is required", http.StatusBadRequest)
		return
	}

	if s.Shop != nil {
		req.Context = s.Shop.Snapshot(catalog.Names())
	}
	if len(req.Products) == 0 {
		req.Products = catalog.All()
	}

	utils.AddToLogMessage(&logMessageBuilder, "Assistant request: "+req.Message)

	resp, err := s.Assistant.Respond(r.Context(), req)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Assistant failed: %v", err))
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":    err.Error(),
			"response": "Lo siento, tuve un problema. ¿Puedes intentar de nuevo?",
		})
		return
	}

	if resp.Action != nil && s.Shop != nil {
		if err := assistant.ApplyAction(s.Shop, resp.Action); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Action not applied: %v", err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
