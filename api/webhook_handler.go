package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/styleshop/fitting-room/models"
	"github.com/styleshop/fitting-room/utils"
)

// WebhookRequest is the generic automation command envelope.
type WebhookRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// WebhookResponse is the automation reply envelope.
type WebhookResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type webhookLimit struct {
	Limit int `json:"limit"`
	Page  int `json:"page"`
}

type webhookSaveResult struct {
	UserPhotoURL string `json:"userPhotoUrl"`
	ProductURL   string `json:"productUrl"`
	ProductName  string `json:"productName"`
	ResultURL    string `json:"resultUrl"`
	Feedback     string `json:"feedback"`
}

// WebhookHandler is the operational automation boundary: a generic
// {action, data} command endpoint used by workflow tooling.
func (s *Server) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Webhook API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, WebhookResponse{Success: false, Error: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Webhook action: "+req.Action)
	store := s.Recorder.Store()

	switch req.Action {
	case "get_results":
		opts := webhookLimit{Limit: 10, Page: 1}
		decodeData(req.Data, &opts)

		results, _, err := store.Newest(r.Context(), opts.Page, opts.Limit)
		if err != nil {
			utils.RespondJSON(w, http.StatusInternalServerError, WebhookResponse{Success: false, Error: err.Error()})
			return
		}
		utils.RespondJSON(w, http.StatusOK, WebhookResponse{
			Success: true,
			Data:    results,
			Message: "Resultados obtenidos exitosamente",
		})

	case "get_feedback":
		stats, err := store.FeedbackCounts(r.Context())
		if err != nil {
			utils.RespondJSON(w, http.StatusInternalServerError, WebhookResponse{Success: false, Error: err.Error()})
			return
		}
		utils.RespondJSON(w, http.StatusOK, WebhookResponse{
			Success: true,
			Data:    stats,
			Message: "Estadísticas obtenidas exitosamente",
		})

	case "save_result":
		var payload webhookSaveResult
		decodeData(req.Data, &payload)

		err := s.Recorder.Record(r.Context(), payload.UserPhotoURL, payload.ProductURL,
			payload.ProductName, payload.ResultURL, models.Feedback(payload.Feedback))
		if err != nil {
			utils.RespondJSON(w, http.StatusInternalServerError, WebhookResponse{Success: false, Error: err.Error()})
			return
		}
		utils.RespondJSON(w, http.StatusOK, WebhookResponse{
			Success: true,
			Message: "Resultado guardado exitosamente",
		})

	case "get_popular_products":
		opts := webhookLimit{Limit: 5}
		decodeData(req.Data, &opts)

		ranked, err := store.PopularProducts(r.Context(), opts.Limit)
		if err != nil {
			utils.RespondJSON(w, http.StatusInternalServerError, WebhookResponse{Success: false, Error: err.Error()})
			return
		}
		utils.RespondJSON(w, http.StatusOK, WebhookResponse{
			Success: true,
			Data:    ranked,
			Message: "Productos populares obtenidos",
		})

	default:
		utils.RespondJSON(w, http.StatusBadRequest, WebhookResponse{
			Success: false,
			Error:   "Acción no reconocida. Usa: get_results, get_feedback, save_result, get_popular_products",
		})
	}
}

// decodeData fills dst from the optional data payload, leaving the
// preset defaults in place when absent or malformed.
func decodeData(raw json.RawMessage, dst interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}
