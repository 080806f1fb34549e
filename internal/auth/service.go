// Package auth はオーナーのログイン、セッション発行・検証・破棄を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/bizpage/internal/model"
	"github.com/hitoshi/bizpage/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// LoginResult はログイン成功時に発行されたセッションとオーナー情報。
type LoginResult struct {
	Session *model.Session
	Owner   *model.Owner
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	ownerRepo   repository.OwnerRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
	now         func() time.Time
}

// NewService はServiceを生成する。
func NewService(
	ownerRepo repository.OwnerRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		ownerRepo:   ownerRepo,
		sessionRepo: sessionRepo,
		config:      config,
		now:         time.Now,
	}
}

// Login はユーザー名とパスワードを検証し、新しいセッションを発行する。
// 未登録ユーザーとパスワード誤りはどちらもmodel.ErrInvalidCredentialsを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, model.NewValidationError("Username and password are required.")
	}

	owner, err := s.ownerRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	if owner == nil {
		burnDummyCompare(password)
		slog.Warn("login failed", slog.String("reason", "unknown_user"))
		return nil, model.ErrInvalidCredentials
	}

	if !CheckPassword(owner.PasswordHash, password) {
		slog.Warn("login failed",
			slog.String("reason", "password_mismatch"),
			slog.Int64("owner_id", owner.ID),
		)
		return nil, model.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("owner logged in", slog.Int64("owner_id", owner.ID))
	return &LoginResult{Session: session, Owner: owner}, nil
}

// Validate はセッショントークンを検証し、オーナーIDを返す。
// トークンが空、存在しない、または期限切れの場合はmodel.ErrUnauthenticatedを返す。
func (s *Service) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, model.ErrUnauthenticated
	}

	session, err := s.sessionRepo.FindByID(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil || session.Expired(s.now()) {
		return 0, model.ErrUnauthenticated
	}

	return session.OwnerID, nil
}

// Logout はセッションを破棄する。セッションが存在しない場合もエラーにしない。
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepo.DeleteByID(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("owner logged out")
	return nil
}

// Status はトークンが有効なセッションを指しているかを返す。
// ストアのエラーはログに記録し、未認証として扱う。
func (s *Service) Status(ctx context.Context, token string) bool {
	_, err := s.Validate(ctx, token)
	if err == nil {
		return true
	}
	if !errors.Is(err, model.ErrUnauthenticated) {
		slog.Error("failed to check session status", slog.String("error", err.Error()))
	}
	return false
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, ownerID int64) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := s.now()
	session := &model.Session{
		ID:        sessionID,
		OwnerID:   ownerID,
		ExpiresAt: now.Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
