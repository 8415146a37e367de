package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleUploadProfilePicture(c *gin.Context) {
	if s.deps.Uploader == nil {
		respondError(c, http.StatusServiceUnavailable, "Image hosting is not configured")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image uploaded")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil || len(image) == 0 {
		respondError(c, http.StatusBadRequest, "No image uploaded")
		return
	}

	url, err := s.deps.Uploader.Upload(c.Request.Context(), image)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondData(c, gin.H{"url": url})
}
