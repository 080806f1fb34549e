// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hitoshi/bizpage/internal/model"
)

// ErrDuplicate は一意制約に違反する書き込みを表す。
var ErrDuplicate = errors.New("duplicate key")

// ProfileRepository はビジネスプロフィールの永続化インターフェース。
type ProfileRepository interface {
	// Get はプロフィールを取得する。未作成の場合はnilを返す。
	Get(ctx context.Context) (*model.BusinessProfile, error)

	// Create はプロフィールを固定IDで作成する。既に存在する場合は何もしない。
	Create(ctx context.Context, profile *model.BusinessProfile) error

	// Update は編集可能な全項目を置き換え、更新後の行を返す。
	Update(ctx context.Context, profile *model.BusinessProfile) (*model.BusinessProfile, error)

	// Count はプロフィールの行数を返す。
	Count(ctx context.Context) (int, error)
}

// ServiceRepository は提供サービスの永続化インターフェース。
type ServiceRepository interface {
	// List は (display_order, id) の昇順で全件を返す。
	List(ctx context.Context) ([]*model.Service, error)

	// Create はサービスを作成し、採番されたIDを設定する。
	Create(ctx context.Context, service *model.Service) error

	// CreateMany は複数のサービスを同一トランザクションで作成する。
	CreateMany(ctx context.Context, services []*model.Service) error

	// Update はtitle、summary、display_orderを置き換える。
	// 対象が存在しない場合はnilを返す。
	Update(ctx context.Context, service *model.Service) (*model.Service, error)

	// Delete は指定IDのサービスを削除する。存在しない場合もエラーにしない。
	Delete(ctx context.Context, id int64) error

	// Count はサービスの件数を返す。
	Count(ctx context.Context) (int, error)
}

// TestimonialRepository はお客様の声の永続化インターフェース。
type TestimonialRepository interface {
	// List はID昇順で全件を返す。
	List(ctx context.Context) ([]*model.Testimonial, error)

	// Create はお客様の声を作成し、採番されたIDを設定する。
	Create(ctx context.Context, testimonial *model.Testimonial) error

	// CreateMany は複数のお客様の声を同一トランザクションで作成する。
	CreateMany(ctx context.Context, testimonials []*model.Testimonial) error

	// Update はauthor、quote、roleを置き換える。対象が存在しない場合はnilを返す。
	Update(ctx context.Context, testimonial *model.Testimonial) (*model.Testimonial, error)

	// Delete は指定IDを削除する。存在しない場合もエラーにしない。
	Delete(ctx context.Context, id int64) error

	// Count は件数を返す。
	Count(ctx context.Context) (int, error)
}

// LeadRepository は問い合わせの永続化インターフェース。追記と一覧のみ提供する。
type LeadRepository interface {
	// Create は問い合わせを作成し、IDとDB側で採番したcreated_atを設定する。
	Create(ctx context.Context, lead *model.Lead) error

	// List はcreated_atの降順（同時刻はID降順）で全件を返す。
	List(ctx context.Context) ([]*model.Lead, error)
}

// OwnerRepository はオーナー認証情報の永続化インターフェース。
type OwnerRepository interface {
	// FindByUsername はユーザー名の完全一致で検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Owner, error)

	// Create はオーナーを作成する。ユーザー名が重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, owner *model.Owner) error

	// Count はオーナーの件数を返す。
	Count(ctx context.Context) (int, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
// PostgreSQL実装とインメモリ実装を差し替えられる。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。存在しないか期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにしない。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByOwnerID は指定オーナーの全セッションを削除する。
	DeleteByOwnerID(ctx context.Context, ownerID int64) error
	// DeleteExpired は期限切れのセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// nullableString はsql.NullStringを*stringに変換する。
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
