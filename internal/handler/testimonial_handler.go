package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bizpage/internal/content"
)

type testimonialRequest struct {
	Author string  `json:"author"`
	Quote  string  `json:"quote"`
	Role   *string `json:"role"`
}

func (req testimonialRequest) input() content.TestimonialInput {
	return content.TestimonialInput{
		Author: req.Author,
		Quote:  req.Quote,
		Role:   nullIfEmpty(req.Role),
	}
}

// ListTestimonials はお客様の声をID順で返す。
// GET /api/testimonials
func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.service.ListTestimonials(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTestimonialResponses(testimonials))
}

// CreateTestimonial はお客様の声を作成する。
// POST /api/testimonials
func (h *ContentHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	created, err := h.service.CreateTestimonial(r.Context(), req.input())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTestimonialResponse(created))
}

// UpdateTestimonial はお客様の声を全項目置き換えで更新する。
// PUT /api/testimonials/{id}
func (h *ContentHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	id, _ := parseID(chi.URLParam(r, "id"))

	updated, err := h.service.UpdateTestimonial(r.Context(), id, req.input())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTestimonialResponse(updated))
}

// DeleteTestimonial はお客様の声を削除する。
// DELETE /api/testimonials/{id}
func (h *ContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if id, ok := parseID(chi.URLParam(r, "id")); ok {
		if err := h.service.DeleteTestimonial(r.Context(), id); err != nil {
			handleServiceError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
