package controllers

import (
	"encoding/json"
	"net/http"

	"tradelink_server/services"
)

// S3Controller hands out presigned URLs for profile photos.
type S3Controller struct {
	S3 *services.S3Service
}

func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3: service}
}

// HandleGenerateUploadURL - POST /api/s3/upload-url
func (c *S3Controller) HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FileName == "" {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "fileName and fileType required"})
		return
	}

	url, key, err := c.S3.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Upload URL generated", map[string]string{"uploadUrl": url, "key": key})
}

// HandleGenerateReadURL - GET /api/s3/read-url?key=...
func (c *S3Controller) HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "key required"})
		return
	}

	url, err := c.S3.GenerateReadURL(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Read URL generated", map[string]string{"readUrl": url})
}
