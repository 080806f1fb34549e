// Package content はランディングページのコンテンツ（プロフィール、サービス、
// お客様の声）と問い合わせの読み書きを提供する。
package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hitoshi/bizpage/internal/model"
	"github.com/hitoshi/bizpage/internal/repository"
)

// ErrProfileMissing はプロフィール行が存在しないことを表す。
// シード済みのストアでは発生しない。
var ErrProfileMissing = errors.New("business profile row is missing")

// ProfileInput はプロフィール更新の入力。全項目置き換えで、nilの項目はNULLになる。
type ProfileInput struct {
	Name           string
	Tagline        *string
	Description    *string
	Phone          *string
	Email          *string
	Address        *string
	PrimaryColor   *string
	SecondaryColor *string
	AccentColor    *string
}

// ServiceInput はサービスの作成・更新の入力。
type ServiceInput struct {
	Title        string
	Summary      string
	DisplayOrder int
}

// TestimonialInput はお客様の声の作成・更新の入力。
type TestimonialInput struct {
	Author string
	Quote  string
	Role   *string
}

// LeadInput は問い合わせ作成の入力。Emailのみ必須。
type LeadInput struct {
	Name    *string
	Email   string
	Phone   *string
	Message *string
}

// Service はコンテンツ管理のビジネスロジックを提供する。
type Service struct {
	profiles     repository.ProfileRepository
	services     repository.ServiceRepository
	testimonials repository.TestimonialRepository
	leads        repository.LeadRepository
}

// NewService はServiceを生成する。
func NewService(
	profiles repository.ProfileRepository,
	services repository.ServiceRepository,
	testimonials repository.TestimonialRepository,
	leads repository.LeadRepository,
) *Service {
	return &Service{
		profiles:     profiles,
		services:     services,
		testimonials: testimonials,
		leads:        leads,
	}
}

// GetProfile はビジネスプロフィールを返す。
func (s *Service) GetProfile(ctx context.Context) (*model.BusinessProfile, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileMissing
	}
	return profile, nil
}

// UpdateProfile はプロフィールの編集可能な全項目を置き換える。
// メールアドレスや色の形式は検証しない。
func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (*model.BusinessProfile, error) {
	if in.Name == "" {
		return nil, model.NewValidationError("Name is required.")
	}

	updated, err := s.profiles.Update(ctx, &model.BusinessProfile{
		ID:             model.ProfileID,
		Name:           in.Name,
		Tagline:        in.Tagline,
		Description:    in.Description,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
		AccentColor:    in.AccentColor,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrProfileMissing
	}

	slog.Info("business profile updated")
	return updated, nil
}

// ListServices は表示順でサービス一覧を返す。
func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	return s.services.List(ctx)
}

// CreateService はサービスを作成する。
func (s *Service) CreateService(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if err := validateService(in); err != nil {
		return nil, err
	}

	svc := &model.Service{
		Title:        in.Title,
		Summary:      in.Summary,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	slog.Info("service created", slog.Int64("service_id", svc.ID))
	return svc, nil
}

// UpdateService はサービスの3項目を置き換える。
// 対象が存在しない場合はエラーにせずnilを返す。
func (s *Service) UpdateService(ctx context.Context, id int64, in ServiceInput) (*model.Service, error) {
	if err := validateService(in); err != nil {
		return nil, err
	}

	updated, err := s.services.Update(ctx, &model.Service{
		ID:           id,
		Title:        in.Title,
		Summary:      in.Summary,
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		slog.Info("service update skipped: not found", slog.Int64("service_id", id))
		return nil, nil
	}
	return updated, nil
}

// DeleteService はサービスを削除する。存在しないIDでも成功する。
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("service deleted", slog.Int64("service_id", id))
	return nil
}

// ListTestimonials は登録順でお客様の声の一覧を返す。
func (s *Service) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	return s.testimonials.List(ctx)
}

// CreateTestimonial はお客様の声を作成する。
func (s *Service) CreateTestimonial(ctx context.Context, in TestimonialInput) (*model.Testimonial, error) {
	if err := validateTestimonial(in); err != nil {
		return nil, err
	}

	t := &model.Testimonial{
		Author: in.Author,
		Quote:  in.Quote,
		Role:   in.Role,
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, err
	}

	slog.Info("testimonial created", slog.Int64("testimonial_id", t.ID))
	return t, nil
}

// UpdateTestimonial はお客様の声の3項目を置き換える。
// 対象が存在しない場合はエラーにせずnilを返す。
func (s *Service) UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (*model.Testimonial, error) {
	if err := validateTestimonial(in); err != nil {
		return nil, err
	}

	updated, err := s.testimonials.Update(ctx, &model.Testimonial{
		ID:     id,
		Author: in.Author,
		Quote:  in.Quote,
		Role:   in.Role,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		slog.Info("testimonial update skipped: not found", slog.Int64("testimonial_id", id))
	}
	return updated, nil
}

// DeleteTestimonial はお客様の声を削除する。存在しないIDでも成功する。
func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := s.testimonials.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("testimonial deleted", slog.Int64("testimonial_id", id))
	return nil
}

// CreateLead は問い合わせを記録する。created_atはストアが採番する。
func (s *Service) CreateLead(ctx context.Context, in LeadInput) (*model.Lead, error) {
	if in.Email == "" {
		return nil, model.NewValidationError("Email is required.")
	}

	lead := &model.Lead{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	slog.Info("lead captured", slog.Int64("lead_id", lead.ID))
	return lead, nil
}

// ListLeads は新しい順に問い合わせ一覧を返す。
func (s *Service) ListLeads(ctx context.Context) ([]*model.Lead, error) {
	return s.leads.List(ctx)
}

// GetBundle はランディングページ用にプロフィール、サービス、お客様の声をまとめて返す。
func (s *Service) GetBundle(ctx context.Context) (*model.ContentBundle, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	services, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}

	testimonials, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, err
	}

	return &model.ContentBundle{
		Profile:      profile,
		Services:     services,
		Testimonials: testimonials,
	}, nil
}

func validateService(in ServiceInput) error {
	if in.Title == "" || in.Summary == "" {
		return model.NewValidationError("Title and summary are required.")
	}
	return nil
}

func validateTestimonial(in TestimonialInput) error {
	if in.Author == "" || in.Quote == "" {
		return model.NewValidationError("Author and quote are required.")
	}
	return nil
}
