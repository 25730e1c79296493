package handlers

import (
	"net/http"
	"time"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/pkg/events"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.deps.Announcements.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list announcements", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req domain.AnnouncementCreateReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		response.BadRequest(w, "title is required")
		return
	}

	announcement := &domain.Announcement{
		Title: req.Title,
		Body:  req.Body,
	}

	created, err := h.deps.Announcements.Insert(r.Context(), announcement)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to insert announcement", "error", err)
		response.InternalError(w)
		return
	}

	if err := h.deps.Publisher.Publish(r.Context(), events.AnnouncementCreated, events.AnnouncementEvent{
		AnnouncementID: created.ID.Hex(),
		Title:          created.Title,
		OccurredAt:     time.Now(),
	}); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish event", "error", err, "subject", events.AnnouncementCreated)
	}

	writeJSON(w, http.StatusCreated, created)
}
