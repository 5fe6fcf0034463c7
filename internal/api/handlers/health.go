package handlers

import "net/http"

type HealthHandler struct {
	ffmpegAvailable func() bool
}

func NewHealthHandler(ffmpegAvailable func() bool) *HealthHandler {
	return &HealthHandler{ffmpegAvailable: ffmpegAvailable}
}

// Health reports service liveness and whether the decode tool is on PATH.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"status": "ok",
		"ffmpeg": h.ffmpegAvailable(),
	}, http.StatusOK)
}
