package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"tent-ledger-backend/internal/storage"
)

// ImageHandler uploads and serves inventory photos
type ImageHandler struct {
	images storage.ImageStore
}

func NewImageHandler(images storage.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload takes the raw image as the request body. The returned URL goes
// into an inventory item's image field.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.images.Save(r.Context(), r.URL.Query().Get("name"), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Key: key, URL: url})
}

func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	file, contentType, err := h.images.Open(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, file)
}
