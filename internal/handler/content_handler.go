package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/bizpage/internal/content"
	"github.com/hitoshi/bizpage/internal/metrics"
	"github.com/hitoshi/bizpage/internal/model"
)

// ContentServiceInterface はコンテンツハンドラーが必要とするサービスインターフェース。
type ContentServiceInterface interface {
	GetBundle(ctx context.Context) (*model.ContentBundle, error)

	GetProfile(ctx context.Context) (*model.BusinessProfile, error)
	UpdateProfile(ctx context.Context, in content.ProfileInput) (*model.BusinessProfile, error)

	ListServices(ctx context.Context) ([]*model.Service, error)
	CreateService(ctx context.Context, in content.ServiceInput) (*model.Service, error)
	UpdateService(ctx context.Context, id int64, in content.ServiceInput) (*model.Service, error)
	DeleteService(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context) ([]*model.Testimonial, error)
	CreateTestimonial(ctx context.Context, in content.TestimonialInput) (*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id int64, in content.TestimonialInput) (*model.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error

	CreateLead(ctx context.Context, in content.LeadInput) (*model.Lead, error)
	ListLeads(ctx context.Context) ([]*model.Lead, error)
}

// ContentHandler はランディングページのコンテンツと問い合わせのHTTPハンドラー。
// 書き込み系のルートはセッションミドルウェアの内側に配置する。
type ContentHandler struct {
	service ContentServiceInterface
	metrics metrics.MetricsCollector
}

// NewContentHandler はContentHandlerを生成する。
func NewContentHandler(service ContentServiceInterface, collector metrics.MetricsCollector) *ContentHandler {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &ContentHandler{service: service, metrics: collector}
}

// --- レスポンス型 ---

type profileResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Tagline        *string `json:"tagline"`
	Description    *string `json:"description"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	AccentColor    *string `json:"accent_color"`
}

type serviceResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	DisplayOrder int    `json:"display_order"`
}

type testimonialResponse struct {
	ID     int64   `json:"id"`
	Author string  `json:"author"`
	Quote  string  `json:"quote"`
	Role   *string `json:"role"`
}

type leadResponse struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type bundleResponse struct {
	Profile      *profileResponse      `json:"profile"`
	Services     []serviceResponse     `json:"services"`
	Testimonials []testimonialResponse `json:"testimonials"`
}

func toProfileResponse(p *model.BusinessProfile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{
		ID:             p.ID,
		Name:           p.Name,
		Tagline:        nullIfEmpty(p.Tagline),
		Description:    nullIfEmpty(p.Description),
		Phone:          nullIfEmpty(p.Phone),
		Email:          nullIfEmpty(p.Email),
		Address:        nullIfEmpty(p.Address),
		PrimaryColor:   nullIfEmpty(p.PrimaryColor),
		SecondaryColor: nullIfEmpty(p.SecondaryColor),
		AccentColor:    nullIfEmpty(p.AccentColor),
	}
}

func toServiceResponse(s *model.Service) *serviceResponse {
	if s == nil {
		return nil
	}
	return &serviceResponse{
		ID:           s.ID,
		Title:        s.Title,
		Summary:      s.Summary,
		DisplayOrder: s.DisplayOrder,
	}
}

func toServiceResponses(services []*model.Service) []serviceResponse {
	out := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, *toServiceResponse(s))
	}
	return out
}

func toTestimonialResponse(t *model.Testimonial) *testimonialResponse {
	if t == nil {
		return nil
	}
	return &testimonialResponse{
		ID:     t.ID,
		Author: t.Author,
		Quote:  t.Quote,
		Role:   nullIfEmpty(t.Role),
	}
}

func toTestimonialResponses(testimonials []*model.Testimonial) []testimonialResponse {
	out := make([]testimonialResponse, 0, len(testimonials))
	for _, t := range testimonials {
		out = append(out, *toTestimonialResponse(t))
	}
	return out
}

func toLeadResponse(l *model.Lead) leadResponse {
	return leadResponse{
		ID:        l.ID,
		Name:      nullIfEmpty(l.Name),
		Email:     l.Email,
		Phone:     nullIfEmpty(l.Phone),
		Message:   nullIfEmpty(l.Message),
		CreatedAt: l.CreatedAt.UTC(),
	}
}

// --- まとめ取得とプロフィール ---

type updateProfileRequest struct {
	Name           string  `json:"name"`
	Tagline        *string `json:"tagline"`
	Description    *string `json:"description"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	AccentColor    *string `json:"accent_color"`
}

// GetContent はプロフィール、サービス、お客様の声をまとめて返す。
// GET /api/content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.GetBundle(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bundleResponse{
		Profile:      toProfileResponse(bundle.Profile),
		Services:     toServiceResponses(bundle.Services),
		Testimonials: toTestimonialResponses(bundle.Testimonials),
	})
}

// GetBusiness はビジネスプロフィールを返す。
// GET /api/business
func (h *ContentHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateBusiness はプロフィールを全項目置き換えで更新する。
// PUT /api/business
func (h *ContentHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), content.ProfileInput{
		Name:           req.Name,
		Tagline:        nullIfEmpty(req.Tagline),
		Description:    nullIfEmpty(req.Description),
		Phone:          nullIfEmpty(req.Phone),
		Email:          nullIfEmpty(req.Email),
		Address:        nullIfEmpty(req.Address),
		PrimaryColor:   nullIfEmpty(req.PrimaryColor),
		SecondaryColor: nullIfEmpty(req.SecondaryColor),
		AccentColor:    nullIfEmpty(req.AccentColor),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}
