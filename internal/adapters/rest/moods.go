package rest

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/core/domain"
)

type createMoodRequest struct {
	MoodWord string `json:"mood_word"`
	Note     string `json:"note"`
}

type dayboardResponse struct {
	ID       string   `json:"id"`
	MoodWord string   `json:"mood_word"`
	Songs    []string `json:"songs"`
	Images   []string `json:"images"`
	Outfits  []string `json:"outfits"`
	Coffee   string   `json:"coffee"`
}

func newDayboardResponse(m domain.MoodEntry) dayboardResponse {
	b := m.Bundle.Clamp()
	return dayboardResponse{
		ID:       m.ID,
		MoodWord: m.MoodWord,
		Songs:    b.Songs,
		Images:   b.Images,
		Outfits:  b.Outfits,
		Coffee:   b.Coffee,
	}
}

// CreateMood handles POST /moods
func (h *Handler) CreateMood(w http.ResponseWriter, r *http.Request) {
	var req createMoodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := UserID(r.Context())
	entry, err := h.journal.Create(r.Context(), userID, req.MoodWord, req.Note)
	h.setQuotaHeader(w, r, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMood):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, err.Error())
		default:
			h.logger.Error("create mood failed", zap.String("user_id", userID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, newDayboardResponse(entry))
}

const quotaRemainingHeader = "X-Quota-Remaining"

func (h *Handler) setQuotaHeader(w http.ResponseWriter, r *http.Request, userID string) {
	if left, ok := h.journal.Remaining(r.Context(), userID); ok {
		w.Header().Set(quotaRemainingHeader, strconv.Itoa(left))
	}
}

// ListMoods handles GET /moods
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	moods, err := h.journal.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list moods failed", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if moods == nil {
		moods = []domain.MoodSummary{}
	}
	writeJSON(w, http.StatusOK, moods)
}

// GetMood handles GET /moods/{id}
func (h *Handler) GetMood(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	entry, err := h.journal.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("get mood failed", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, newDayboardResponse(entry))
}
