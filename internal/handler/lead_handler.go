package handler

import (
	"net/http"

	"github.com/hitoshi/bizpage/internal/content"
)

type createLeadRequest struct {
	Name    *string `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
}

// CreateLead は訪問者からの問い合わせを受け付ける。認証不要。
// POST /api/leads
func (h *ContentHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	lead, err := h.service.CreateLead(r.Context(), content.LeadInput{
		Name:    nullIfEmpty(req.Name),
		Email:   req.Email,
		Phone:   nullIfEmpty(req.Phone),
		Message: nullIfEmpty(req.Message),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.metrics.RecordLeadCreated()

	writeJSON(w, http.StatusCreated, toLeadResponse(lead))
}

// ListLeads は問い合わせを新しい順で返す。
// GET /api/leads
func (h *ContentHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.service.ListLeads(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}
