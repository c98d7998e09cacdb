package api

import (
	"net/http"
	"strconv"

	"github.com/styleshop/fitting-room/models"
	"github.com/styleshop/fitting-room/utils"
)

// ResultsResponse is the paginated listing of recorded try-ons.
type ResultsResponse struct {
	Results     []models.UserResult `json:"results"`
	Total       int64               `json:"total"`
	CurrentPage int                 `json:"current_page"`
	TotalPages  int                 `json:"total_pages"`
}

// ResultsHandler lists recorded try-on results newest-first.
func (s *Server) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := 1
	limit := 10

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	results, total, err := s.Recorder.Store().Newest(r.Context(), page, limit)
	if err != nil {
		http.Error(w, "Failed to fetch data", http.StatusInternalServerError)
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	utils.RespondJSON(w, http.StatusOK, ResultsResponse{
		Results:     results,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}
