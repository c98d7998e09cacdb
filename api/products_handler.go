package api

import (
	"net/http"

	"github.com/styleshop/fitting-room/catalog"
	"github.com/styleshop/fitting-room/utils"
)

// ProductsHandler lists the garment catalog, or returns a single
// product when an id query parameter is given.
func (s *Server) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		product, ok := catalog.FindByID(id)
		if !ok {
			utils.RespondError(w, nil, "Product not found", http.StatusNotFound)
			return
		}
		utils.RespondJSON(w, http.StatusOK, product)
		return
	}

	utils.RespondJSON(w, http.StatusOK, catalog.All())
}
