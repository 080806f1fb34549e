package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bizpage/internal/model"
)

// PostgresLeadRepo はPostgreSQLを使用した問い合わせリポジトリ。
// 追記専用のため、更新・削除メソッドは持たない。
type PostgresLeadRepo struct {
	db *sql.DB
}

// NewPostgresLeadRepo はPostgresLeadRepoを生成する。
func NewPostgresLeadRepo(db *sql.DB) *PostgresLeadRepo {
	return &PostgresLeadRepo{db: db}
}

// Create は問い合わせを作成し、IDとcreated_atを設定する。
// created_atはDBのデフォルト値（now()）で採番する。
func (r *PostgresLeadRepo) Create(ctx context.Context, l *model.Lead) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO leads (name, email, phone, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		l.Name, l.Email, l.Phone, l.Message,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// List はcreated_atの降順（同時刻はID降順）で全件を返す。
func (r *PostgresLeadRepo) List(ctx context.Context) ([]*model.Lead, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, created_at
		 FROM leads
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*model.Lead, 0)
	for rows.Next() {
		l := &model.Lead{}
		var name, phone, message sql.NullString
		if err := rows.Scan(&l.ID, &name, &l.Email, &phone, &message, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		l.Name = nullableString(name)
		l.Phone = nullableString(phone)
		l.Message = nullableString(message)
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

// compile-time interface check
var _ LeadRepository = (*PostgresLeadRepo)(nil)
