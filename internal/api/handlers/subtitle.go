package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/submaker/backend/internal/ffmpeg"
	"github.com/submaker/backend/internal/job"
	"github.com/submaker/backend/internal/pipeline"
)

type SubtitleHandler struct {
	mediaPath string
	decoder   *ffmpeg.Decoder
	queue     *job.JobQueue
}

func NewSubtitleHandler(mediaPath string, decoder *ffmpeg.Decoder, queue *job.JobQueue) *SubtitleHandler {
	return &SubtitleHandler{mediaPath: mediaPath, decoder: decoder, queue: queue}
}

type generateRequest struct {
	FilePath       string `json:"file_path"`
	TargetLang     string `json:"target_lang"`
	SegmentSeconds int    `json:"segment_seconds,omitempty"`
	OutputPath     string `json:"output_path,omitempty"`
	SpeechEngine   string `json:"speech_engine,omitempty"`
}

// resolveMediaPath joins a client-supplied relative path with the media
// root, rejecting traversal outside it.
func (h *SubtitleHandler) resolveMediaPath(rel string) (string, bool) {
	rel = filepath.Clean("/" + rel)[1:] // strip leading separators, collapse ..
	if rel == "" {
		return "", false
	}
	full := filepath.Join(h.mediaPath, rel)
	if !strings.HasPrefix(full, filepath.Clean(h.mediaPath)+string(os.PathSeparator)) {
		return "", false
	}
	return full, true
}

// Generate enqueues a subtitle run for an audio file under the media root.
func (h *SubtitleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.TargetLang == "" {
		jsonError(w, "target_lang is required", http.StatusBadRequest)
		return
	}
	if req.SegmentSeconds < 0 {
		jsonError(w, "segment_seconds must be positive", http.StatusBadRequest)
		return
	}

	fullPath, ok := h.resolveMediaPath(req.FilePath)
	if !ok {
		jsonError(w, "invalid file path", http.StatusBadRequest)
		return
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		jsonError(w, "file not found: "+req.FilePath, http.StatusNotFound)
		return
	}

	j, err := h.queue.Enqueue(job.JobSubtitle, req.FilePath, job.SubtitleParams{
		TargetLang:     req.TargetLang,
		SegmentSeconds: req.SegmentSeconds,
		OutputPath:     req.OutputPath,
		SpeechEngine:   req.SpeechEngine,
	})
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

// MediaInfo probes an audio file and returns duration and stream details.
func (h *SubtitleHandler) MediaInfo(w http.ResponseWriter, r *http.Request) {
	fullPath, ok := h.resolveMediaPath(r.URL.Query().Get("path"))
	if !ok {
		jsonError(w, "invalid file path", http.StatusBadRequest)
		return
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		jsonError(w, "file not found", http.StatusNotFound)
		return
	}

	info, err := h.decoder.Probe(fullPath)
	if err != nil {
		jsonError(w, "probe failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, info, http.StatusOK)
}

// Download serves the SRT produced by a completed job.
func (h *SubtitleHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	j, err := h.queue.GetJob(id)
	if err != nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	if j.Status != job.StatusCompleted && j.Status != job.StatusCancelled {
		jsonError(w, "job has no output yet", http.StatusConflict)
		return
	}

	var summary pipeline.Summary
	if err := json.Unmarshal(j.Result, &summary); err != nil || summary.OutputPath == "" {
		// Cancelled jobs keep partial output at the default location
		fullPath, ok := h.resolveMediaPath(j.FilePath)
		if !ok {
			jsonError(w, "no output recorded for job", http.StatusNotFound)
			return
		}
		summary.OutputPath = pipeline.DefaultOutputPath(fullPath)
	}

	if _, err := os.Stat(summary.OutputPath); err != nil {
		jsonError(w, "output file missing", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		"attachment; filename=\""+filepath.Base(summary.OutputPath)+"\"")
	http.ServeFile(w, r, summary.OutputPath)
}
