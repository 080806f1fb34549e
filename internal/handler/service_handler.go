package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bizpage/internal/content"
)

// serviceRequest はサービス作成・更新リクエストのボディ。
// display_orderは数値文字列も受け付けるため生のまま受け取る。
type serviceRequest struct {
	Title        string          `json:"title"`
	Summary      string          `json:"summary"`
	DisplayOrder json.RawMessage `json:"display_order"`
}

func (req serviceRequest) input() content.ServiceInput {
	return content.ServiceInput{
		Title:        req.Title,
		Summary:      req.Summary,
		DisplayOrder: parseDisplayOrder(req.DisplayOrder),
	}
}

// ListServices は表示順でサービス一覧を返す。
// GET /api/services
func (h *ContentHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceResponses(services))
}

// CreateService はサービスを作成する。
// POST /api/services
func (h *ContentHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	created, err := h.service.CreateService(r.Context(), req.input())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toServiceResponse(created))
}

// UpdateService はサービスを全項目置き換えで更新する。
// 対象が存在しない場合は200でnullを返す。
// PUT /api/services/{id}
func (h *ContentHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	// 数値でないIDは0として扱い、一致する行がないためnullを返す
	id, _ := parseID(chi.URLParam(r, "id"))

	updated, err := h.service.UpdateService(r.Context(), id, req.input())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceResponse(updated))
}

// DeleteService はサービスを削除する。存在しない場合も204を返す。
// DELETE /api/services/{id}
func (h *ContentHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if id, ok := parseID(chi.URLParam(r, "id")); ok {
		if err := h.service.DeleteService(r.Context(), id); err != nil {
			handleServiceError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
