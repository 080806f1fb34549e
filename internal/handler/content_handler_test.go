package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bizpage/internal/content"
	"github.com/hitoshi/bizpage/internal/model"
)

// --- モック定義 ---

// mockContentService はContentServiceInterfaceのモック実装。
type mockContentService struct {
	getBundleFn         func(ctx context.Context) (*model.ContentBundle, error)
	getProfileFn        func(ctx context.Context) (*model.BusinessProfile, error)
	updateProfileFn     func(ctx context.Context, in content.ProfileInput) (*model.BusinessProfile, error)
	listServicesFn      func(ctx context.Context) ([]*model.Service, error)
	createServiceFn     func(ctx context.Context, in content.ServiceInput) (*model.Service, error)
	updateServiceFn     func(ctx context.Context, id int64, in content.ServiceInput) (*model.Service, error)
	deleteServiceFn     func(ctx context.Context, id int64) error
	listTestimonialsFn  func(ctx context.Context) ([]*model.Testimonial, error)
	createTestimonialFn func(ctx context.Context, in content.TestimonialInput) (*model.Testimonial, error)
	updateTestimonialFn func(ctx context.Context, id int64, in content.TestimonialInput) (*model.Testimonial, error)
	deleteTestimonialFn func(ctx context.Context, id int64) error
	createLeadFn        func(ctx context.Context, in content.LeadInput) (*model.Lead, error)
	listLeadsFn         func(ctx context.Context) ([]*model.Lead, error)
}

func (m *mockContentService) GetBundle(ctx context.Context) (*model.ContentBundle, error) {
	if m.getBundleFn != nil {
		return m.getBundleFn(ctx)
	}
	return &model.ContentBundle{}, nil
}

func (m *mockContentService) GetProfile(ctx context.Context) (*model.BusinessProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx)
	}
	return nil, nil
}

func (m *mockContentService) UpdateProfile(ctx context.Context, in content.ProfileInput) (*model.BusinessProfile, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, in)
	}
	return nil, nil
}

func (m *mockContentService) ListServices(ctx context.Context) ([]*model.Service, error) {
	if m.listServicesFn != nil {
		return m.listServicesFn(ctx)
	}
	return nil, nil
}

func (m *mockContentService) CreateService(ctx context.Context, in content.ServiceInput) (*model.Service, error) {
	if m.createServiceFn != nil {
		return m.createServiceFn(ctx, in)
	}
	return nil, nil
}

func (m *mockContentService) UpdateService(ctx context.Context, id int64, in content.ServiceInput) (*model.Service, error) {
	if m.updateServiceFn != nil {
		return m.updateServiceFn(ctx, id, in)
	}
	return nil, nil
}

func (m *mockContentService) DeleteService(ctx context.Context, id int64) error {
	if m.deleteServiceFn != nil {
		return m.deleteServiceFn(ctx, id)
	}
	return nil
}

func (m *mockContentService) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	if m.listTestimonialsFn != nil {
		return m.listTestimonialsFn(ctx)
	}
	return nil, nil
}

func (m *mockContentService) CreateTestimonial(ctx context.Context, in content.TestimonialInput) (*model.Testimonial, error) {
	if m.createTestimonialFn != nil {
		return m.createTestimonialFn(ctx, in)
	}
	return nil, nil
}

func (m *mockContentService) UpdateTestimonial(ctx context.Context, id int64, in content.TestimonialInput) (*model.Testimonial, error) {
	if m.updateTestimonialFn != nil {
		return m.updateTestimonialFn(ctx, id, in)
	}
	return nil, nil
}

func (m *mockContentService) DeleteTestimonial(ctx context.Context, id int64) error {
	if m.deleteTestimonialFn != nil {
		return m.deleteTestimonialFn(ctx, id)
	}
	return nil
}

func (m *mockContentService) CreateLead(ctx context.Context, in content.LeadInput) (*model.Lead, error) {
	if m.createLeadFn != nil {
		return m.createLeadFn(ctx, in)
	}
	return nil, nil
}

func (m *mockContentService) ListLeads(ctx context.Context) ([]*model.Lead, error) {
	if m.listLeadsFn != nil {
		return m.listLeadsFn(ctx)
	}
	return nil, nil
}

// --- テストヘルパー ---

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func strPtr(s string) *string { return &s }

// --- まとめ取得とプロフィール ---

func TestContentHandler_GetContent_ReturnsBundle(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		getBundleFn: func(ctx context.Context) (*model.ContentBundle, error) {
			return &model.ContentBundle{
				Profile:      &model.BusinessProfile{ID: 1, Name: "Acme"},
				Services:     []*model.Service{{ID: 2, Title: "A", Summary: "S", DisplayOrder: 1}},
				Testimonials: nil,
			}, nil
		},
	}, nil)

	w := httptest.NewRecorder()
	h.GetContent(w, httptest.NewRequest(http.MethodGet, "/api/content", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if string(body["testimonials"]) != "[]" {
		t.Errorf("testimonials = %s, want []", body["testimonials"])
	}
	var services []serviceResponse
	json.Unmarshal(body["services"], &services)
	if len(services) != 1 || services[0].DisplayOrder != 1 {
		t.Errorf("services = %+v", services)
	}
}

func TestContentHandler_GetContent_StoreError_Returns500(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		getBundleFn: func(ctx context.Context) (*model.ContentBundle, error) {
			return nil, content.ErrProfileMissing
		},
	}, nil)

	w := httptest.NewRecorder()
	h.GetContent(w, httptest.NewRequest(http.MethodGet, "/api/content", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestContentHandler_GetBusiness_NullableFieldsAsNull(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		getProfileFn: func(ctx context.Context) (*model.BusinessProfile, error) {
			return &model.BusinessProfile{ID: 1, Name: "Acme", Tagline: strPtr(""), Phone: strPtr("555")}, nil
		},
	}, nil)

	w := httptest.NewRecorder()
	h.GetBusiness(w, httptest.NewRequest(http.MethodGet, "/api/business", nil))

	var body map[string]any
	json.NewDecoder(w.Body).Decode(&body)

	if body["name"] != "Acme" || body["phone"] != "555" {
		t.Errorf("body = %v", body)
	}
	for _, key := range []string{"tagline", "description", "email", "address", "primary_color", "secondary_color", "accent_color"} {
		v, ok := body[key]
		if !ok {
			t.Errorf("%s should be present", key)
		}
		if v != nil {
			t.Errorf("%s = %v, want null", key, v)
		}
	}
}

func TestContentHandler_UpdateBusiness_FullReplace(t *testing.T) {
	var got content.ProfileInput
	h := NewContentHandler(&mockContentService{
		updateProfileFn: func(ctx context.Context, in content.ProfileInput) (*model.BusinessProfile, error) {
			got = in
			return &model.BusinessProfile{ID: 1, Name: in.Name, PrimaryColor: in.PrimaryColor}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/business",
		strings.NewReader(`{"name":"Acme","tagline":"","primary_color":"#fff"}`))
	w := httptest.NewRecorder()

	h.UpdateBusiness(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got.Name != "Acme" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Tagline != nil {
		t.Error("empty tagline should be stored as null")
	}
	if got.Phone != nil {
		t.Error("omitted phone should be null")
	}
	if got.PrimaryColor == nil || *got.PrimaryColor != "#fff" {
		t.Errorf("primary_color = %v", got.PrimaryColor)
	}
}

func TestContentHandler_UpdateBusiness_ValidationError_Returns400(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		updateProfileFn: func(ctx context.Context, in content.ProfileInput) (*model.BusinessProfile, error) {
			return nil, model.NewValidationError("Name is required.")
		},
	}, nil)

	w := httptest.NewRecorder()
	h.UpdateBusiness(w, httptest.NewRequest(http.MethodPut, "/api/business", strings.NewReader(`{}`)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["code"] != model.ErrCodeValidation {
		t.Errorf("code = %q", body["code"])
	}
}

// --- サービス ---

func TestContentHandler_CreateService_DisplayOrderParsing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"omitted", `{"title":"t","summary":"s"}`, 0},
		{"number", `{"title":"t","summary":"s","display_order":3}`, 3},
		{"numeric string", `{"title":"t","summary":"s","display_order":"4"}`, 4},
		{"non numeric string", `{"title":"t","summary":"s","display_order":"first"}`, 0},
		{"null", `{"title":"t","summary":"s","display_order":null}`, 0},
		{"boolean", `{"title":"t","summary":"s","display_order":true}`, 0},
		{"negative", `{"title":"t","summary":"s","display_order":-2}`, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got content.ServiceInput
			h := NewContentHandler(&mockContentService{
				createServiceFn: func(ctx context.Context, in content.ServiceInput) (*model.Service, error) {
					got = in
					return &model.Service{ID: 1, Title: in.Title, Summary: in.Summary, DisplayOrder: in.DisplayOrder}, nil
				},
			}, nil)

			w := httptest.NewRecorder()
			h.CreateService(w, httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(tt.body)))

			if w.Code != http.StatusCreated {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
			}
			if got.DisplayOrder != tt.want {
				t.Errorf("display_order = %d, want %d", got.DisplayOrder, tt.want)
			}
		})
	}
}

func TestContentHandler_CreateService_MalformedJSON_Returns400(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		createServiceFn: func(ctx context.Context, in content.ServiceInput) (*model.Service, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}, nil)

	w := httptest.NewRecorder()
	h.CreateService(w, httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(`not json`)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestContentHandler_UpdateService_MissingRow_ReturnsNull(t *testing.T) {
	var gotID int64
	h := NewContentHandler(&mockContentService{
		updateServiceFn: func(ctx context.Context, id int64, in content.ServiceInput) (*model.Service, error) {
			gotID = id
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/services/999", strings.NewReader(`{"title":"t","summary":"s"}`))
	req = withChiURLParam(req, "id", "999")
	w := httptest.NewRecorder()

	h.UpdateService(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("body = %q, want null", w.Body.String())
	}
	if gotID != 999 {
		t.Errorf("id = %d, want 999", gotID)
	}
}

func TestContentHandler_UpdateService_NonNumericID_ReturnsNull(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		updateServiceFn: func(ctx context.Context, id int64, in content.ServiceInput) (*model.Service, error) {
			if id != 0 {
				t.Errorf("id = %d, want 0 for non numeric path", id)
			}
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/services/abc", strings.NewReader(`{"title":"t","summary":"s"}`))
	req = withChiURLParam(req, "id", "abc")
	w := httptest.NewRecorder()

	h.UpdateService(w, req)

	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("status = %d body = %q", w.Code, w.Body.String())
	}
}

func TestContentHandler_DeleteService_AlwaysReturns204(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCalled bool
	}{
		{"numeric id", "5", true},
		{"non numeric id", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := NewContentHandler(&mockContentService{
				deleteServiceFn: func(ctx context.Context, id int64) error {
					called = true
					return nil
				},
			}, nil)

			req := withChiURLParam(httptest.NewRequest(http.MethodDelete, "/api/services/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()

			h.DeleteService(w, req)

			if w.Code != http.StatusNoContent {
				t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
			}
			if called != tt.wantCalled {
				t.Errorf("called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestContentHandler_DeleteService_StoreError_Returns500(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		deleteServiceFn: func(ctx context.Context, id int64) error { return errors.New("db down") },
	}, nil)

	req := withChiURLParam(httptest.NewRequest(http.MethodDelete, "/api/services/5", nil), "id", "5")
	w := httptest.NewRecorder()

	h.DeleteService(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// --- お客様の声 ---

func TestContentHandler_CreateTestimonial_RoleOptional(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		createTestimonialFn: func(ctx context.Context, in content.TestimonialInput) (*model.Testimonial, error) {
			return &model.Testimonial{ID: 3, Author: in.Author, Quote: in.Quote, Role: in.Role}, nil
		},
	}, nil)

	w := httptest.NewRecorder()
	h.CreateTestimonial(w, httptest.NewRequest(http.MethodPost, "/api/testimonials",
		strings.NewReader(`{"author":"Ann","quote":"Great"}`)))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var body map[string]any
	json.NewDecoder(w.Body).Decode(&body)
	if v, ok := body["role"]; !ok || v != nil {
		t.Errorf("role = %v, want null", v)
	}
}

func TestContentHandler_UpdateTestimonial_ReturnsRow(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		updateTestimonialFn: func(ctx context.Context, id int64, in content.TestimonialInput) (*model.Testimonial, error) {
			return &model.Testimonial{ID: id, Author: in.Author, Quote: in.Quote, Role: in.Role}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/testimonials/4",
		strings.NewReader(`{"author":"Ann","quote":"Better","role":"CEO"}`))
	req = withChiURLParam(req, "id", "4")
	w := httptest.NewRecorder()

	h.UpdateTestimonial(w, req)

	var body testimonialResponse
	json.NewDecoder(w.Body).Decode(&body)
	if body.ID != 4 || body.Role == nil || *body.Role != "CEO" {
		t.Errorf("body = %+v", body)
	}
}

// --- 問い合わせ ---

func TestContentHandler_CreateLead_Returns201AndRecordsMetric(t *testing.T) {
	recorder := &mockLoginRecorder{}
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewContentHandler(&mockContentService{
		createLeadFn: func(ctx context.Context, in content.LeadInput) (*model.Lead, error) {
			return &model.Lead{ID: 10, Email: in.Email, Name: in.Name, CreatedAt: createdAt}, nil
		},
	}, recorder)

	w := httptest.NewRecorder()
	h.CreateLead(w, httptest.NewRequest(http.MethodPost, "/api/leads",
		strings.NewReader(`{"email":"a@b.com","name":""}`)))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var body map[string]any
	json.NewDecoder(w.Body).Decode(&body)
	if body["email"] != "a@b.com" || body["name"] != nil {
		t.Errorf("body = %v", body)
	}
	if body["created_at"] != "2026-01-02T03:04:05Z" {
		t.Errorf("created_at = %v", body["created_at"])
	}
	if recorder.leads != 1 {
		t.Errorf("leads metric = %d, want 1", recorder.leads)
	}
}

func TestContentHandler_CreateLead_MissingEmail_Returns400(t *testing.T) {
	recorder := &mockLoginRecorder{}
	h := NewContentHandler(&mockContentService{
		createLeadFn: func(ctx context.Context, in content.LeadInput) (*model.Lead, error) {
			return nil, model.NewValidationError("Email is required.")
		},
	}, recorder)

	w := httptest.NewRecorder()
	h.CreateLead(w, httptest.NewRequest(http.MethodPost, "/api/leads", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if recorder.leads != 0 {
		t.Error("rejected lead should not be counted")
	}
}

func TestContentHandler_ListLeads_EmptyIsArray(t *testing.T) {
	h := NewContentHandler(&mockContentService{}, nil)

	w := httptest.NewRecorder()
	h.ListLeads(w, httptest.NewRequest(http.MethodGet, "/api/leads", nil))

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}
