package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bizpage/internal/model"
)

// PostgresServiceRepo はPostgreSQLを使用したサービスリポジトリ。
type PostgresServiceRepo struct {
	db *sql.DB
}

// NewPostgresServiceRepo はPostgresServiceRepoを生成する。
func NewPostgresServiceRepo(db *sql.DB) *PostgresServiceRepo {
	return &PostgresServiceRepo{db: db}
}

// List は (display_order, id) の昇順で全件を返す。
func (r *PostgresServiceRepo) List(ctx context.Context) ([]*model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, summary, display_order
		 FROM services
		 ORDER BY display_order ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]*model.Service, 0)
	for rows.Next() {
		s := &model.Service{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Summary, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}

	return services, nil
}

// Create はサービスを作成し、採番されたIDを設定する。
func (r *PostgresServiceRepo) Create(ctx context.Context, s *model.Service) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO services (title, summary, display_order)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.Title, s.Summary, s.DisplayOrder,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// CreateMany は複数のサービスを同一トランザクションで作成する。
func (r *PostgresServiceRepo) CreateMany(ctx context.Context, services []*model.Service) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range services {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO services (title, summary, display_order)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			s.Title, s.Summary, s.DisplayOrder,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("failed to insert service: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update はtitle、summary、display_orderを置き換える。対象が存在しない場合はnilを返す。
func (r *PostgresServiceRepo) Update(ctx context.Context, s *model.Service) (*model.Service, error) {
	updated := &model.Service{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE services
		 SET title = $2, summary = $3, display_order = $4
		 WHERE id = $1
		 RETURNING id, title, summary, display_order`,
		s.ID, s.Title, s.Summary, s.DisplayOrder,
	).Scan(&updated.ID, &updated.Title, &updated.Summary, &updated.DisplayOrder)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return updated, nil
}

// Delete は指定IDのサービスを削除する。存在しない場合もエラーにしない。
func (r *PostgresServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// Count はサービスの件数を返す。
func (r *PostgresServiceRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM services`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ ServiceRepository = (*PostgresServiceRepo)(nil)
