package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/styleshop/fitting-room/capture"
	"github.com/styleshop/fitting-room/utils"
)

// maxUploadBytes caps the photo multipart form at 10 MB.
const maxUploadBytes = 10 << 20

// UploadHandler receives a user photo (multipart field "photo") and
// stores it, returning the public URL the generator will consume.
func (s *Server) UploadHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Photo Upload API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "A 'photo' file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Error reading file %s", header.Filename), http.StatusInternalServerError)
		return
	}

	photo, err := capture.FromFile(raw, header.Header.Get("Content-Type"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Uploading photo: %s (%d bytes)", header.Filename, len(raw)))

	ref, err := s.Uploader.Upload(r.Context(), photo)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to upload photo: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Upload successful: "+ref.Key)
	utils.RespondJSON(w, http.StatusOK, ref)
}
