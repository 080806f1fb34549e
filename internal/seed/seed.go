// Package seed は初回起動時の既定データ投入を提供する。
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hitoshi/bizpage/internal/auth"
	"github.com/hitoshi/bizpage/internal/model"
	"github.com/hitoshi/bizpage/internal/repository"
)

// Config はシード投入時のオーナー認証情報を保持する。
type Config struct {
	OwnerUsername string
	OwnerPassword string
	// HashCost はbcryptのコスト。0の場合はauth.DefaultHashCostを使う。
	HashCost int
}

// Result は各テーブルに投入したかどうかを表す。
type Result struct {
	Profile      bool
	Services     int
	Testimonials int
	Owner        bool
}

// Seeder は空のテーブルにのみ既定データを投入する。
// 既に行が存在するテーブルには触れないため、何度実行しても重複しない。
type Seeder struct {
	profiles     repository.ProfileRepository
	services     repository.ServiceRepository
	testimonials repository.TestimonialRepository
	owners       repository.OwnerRepository
	config       Config
}

// NewSeeder は新しいSeederを生成する。
func NewSeeder(
	profiles repository.ProfileRepository,
	services repository.ServiceRepository,
	testimonials repository.TestimonialRepository,
	owners repository.OwnerRepository,
	config Config,
) *Seeder {
	if config.HashCost == 0 {
		config.HashCost = auth.DefaultHashCost
	}
	return &Seeder{
		profiles:     profiles,
		services:     services,
		testimonials: testimonials,
		owners:       owners,
		config:       config,
	}
}

// Run は既定データを投入する。
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	n, err := s.profiles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count business profile: %w", err)
	}
	if n == 0 {
		if err := s.profiles.Create(ctx, DefaultProfile()); err != nil {
			return nil, fmt.Errorf("failed to seed business profile: %w", err)
		}
		result.Profile = true
	}

	n, err = s.services.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	if n == 0 {
		rows := DefaultServices()
		if err := s.services.CreateMany(ctx, rows); err != nil {
			return nil, fmt.Errorf("failed to seed services: %w", err)
		}
		result.Services = len(rows)
	}

	n, err = s.testimonials.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count testimonials: %w", err)
	}
	if n == 0 {
		rows := DefaultTestimonials()
		if err := s.testimonials.CreateMany(ctx, rows); err != nil {
			return nil, fmt.Errorf("failed to seed testimonials: %w", err)
		}
		result.Testimonials = len(rows)
	}

	n, err = s.owners.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count owners: %w", err)
	}
	if n == 0 {
		if err := s.seedOwner(ctx); err != nil {
			return nil, err
		}
		result.Owner = true
	}

	slog.Info("seed completed",
		slog.Bool("profile", result.Profile),
		slog.Int("services", result.Services),
		slog.Int("testimonials", result.Testimonials),
		slog.Bool("owner", result.Owner),
	)
	return result, nil
}

func (s *Seeder) seedOwner(ctx context.Context) error {
	if s.config.OwnerUsername == "" || s.config.OwnerPassword == "" {
		return errors.New("owner username and password are required for seeding")
	}

	hash, err := auth.HashPassword(s.config.OwnerPassword, s.config.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	owner := &model.Owner{Username: s.config.OwnerUsername, PasswordHash: hash}
	if err := s.owners.Create(ctx, owner); err != nil {
		// 別プロセスが先に作成した場合は投入済みとみなす
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to seed owner: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }

// DefaultProfile は初期のビジネスプロフィールを返す。
func DefaultProfile() *model.BusinessProfile {
	return &model.BusinessProfile{
		ID:             model.ProfileID,
		Name:           "Your Business Name",
		Tagline:        strPtr("Delivering excellence for every client"),
		Description:    strPtr("Swap this copy with your own story. Highlight what makes your business unique, the problems you solve, and the results customers can expect."),
		Phone:          strPtr("(555) 123-4567"),
		Email:          strPtr("hello@yourbusiness.com"),
		Address:        strPtr("123 Main Street, Anytown, USA"),
		PrimaryColor:   strPtr("#1f2937"),
		SecondaryColor: strPtr("#111827"),
		AccentColor:    strPtr("#f59e0b"),
	}
}

// DefaultServices は初期の提供サービスを返す。
func DefaultServices() []*model.Service {
	return []*model.Service{
		{
			Title:        "Signature Service",
			Summary:      "Describe your flagship service and the tangible outcomes it creates. Focus on the transformation clients experience.",
			DisplayOrder: 1,
		},
		{
			Title:        "Consulting & Strategy",
			Summary:      "Explain how you guide clients, collaborate on strategy, and map out a clear path to their goals.",
			DisplayOrder: 2,
		},
		{
			Title:        "Ongoing Support",
			Summary:      "Reassure prospects with details about support, maintenance, and long-term partnership options.",
			DisplayOrder: 3,
		},
	}
}

// DefaultTestimonials は初期のお客様の声を返す。
func DefaultTestimonials() []*model.Testimonial {
	return []*model.Testimonial{
		{
			Author: "Jordan Matthews",
			Quote:  "“We saw an immediate lift in customer satisfaction. The team translated our ideas into a polished experience that drives results.”",
			Role:   strPtr("COO, Summit Industries"),
		},
		{
			Author: "Priya Desai",
			Quote:  "“The dashboard gives us clear, actionable insight every day. Implementation was smooth and support has been phenomenal.”",
			Role:   strPtr("Founder, Brightside Wellness"),
		},
	}
}
