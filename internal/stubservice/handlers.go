// Package stubservice is a development Processing Service: POST /process,
// GET /result/{id} and GET /health.
package stubservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/srinijamadireddy19/Blog-Digest/internal/db"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/processing"
)

const SERVICE_NAME = "BlogDigest API"

type Processor interface {
	Process(ctx context.Context, sub processing.Submission) (*models.ResultBundle, error)
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Handler struct {
	processor Processor
	results   db.ResultRepository
	maxUpload int64
	newID     func() string
}

func NewHandler(processor Processor, results db.ResultRepository, maxUpload int64) *Handler {
	return &Handler{
		processor: processor,
		results:   results,
		maxUpload: maxUpload,
		newID:     func() string { return uuid.NewString() },
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, HealthResponse{Status: "healthy", Service: SERVICE_NAME})
}

func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	sub, err := parseSubmission(r, h.maxUpload)
	if err != nil {
		var tooLarge *http.MaxBytesError
		var verr *ValidationError
		switch {
		case errors.As(err, &tooLarge):
			ErrorResponse(w, http.StatusRequestEntityTooLarge, "Upload exceeds the size limit")
		case errors.As(err, &verr):
			slog.Warn("[StubService] Rejected submission", slog.String("reason", verr.Message))
			ErrorResponse(w, http.StatusBadRequest, verr.Message)
		default:
			ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	bundle, err := h.processor.Process(r.Context(), sub)
	if err != nil {
		slog.Error("[StubService] Processing failed",
			slog.String("type", string(sub.Kind)),
			slog.String("error", err.Error()))
		status := http.StatusInternalServerError
		if errors.Is(err, processing.ErrEmptyContent) {
			status = http.StatusBadRequest
		}
		ErrorResponse(w, status, err.Error())
		return
	}

	id := h.newID()
	if err := h.results.Save(r.Context(), id, bundle); err != nil {
		slog.Error("[StubService] Failed to store result",
			slog.String("id", id),
			slog.String("error", err.Error()))
		ErrorResponse(w, http.StatusInternalServerError, "failed to store result")
		return
	}

	slog.Info("[StubService] Result stored",
		slog.String("id", id),
		slog.Int("formats", bundle.Len()))
	JSONResponse(w, http.StatusOK, models.ProcessResponse{ID: id, Status: models.ResultStatusSuccess})
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	bundle, err := h.results.Load(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		ErrorResponse(w, http.StatusNotFound, "result not found")
		return
	}
	if err != nil {
		slog.Error("[StubService] Failed to load result",
			slog.String("id", id),
			slog.String("error", err.Error()))
		ErrorResponse(w, http.StatusInternalServerError, "failed to load result")
		return
	}
	JSONResponse(w, http.StatusOK, bundle)
}
