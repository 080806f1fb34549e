package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bizpage/internal/model"
)

// PostgresTestimonialRepo はPostgreSQLを使用したお客様の声リポジトリ。
type PostgresTestimonialRepo struct {
	db *sql.DB
}

// NewPostgresTestimonialRepo はPostgresTestimonialRepoを生成する。
func NewPostgresTestimonialRepo(db *sql.DB) *PostgresTestimonialRepo {
	return &PostgresTestimonialRepo{db: db}
}

// List はID昇順で全件を返す。
func (r *PostgresTestimonialRepo) List(ctx context.Context) ([]*model.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author, quote, role FROM testimonials ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := make([]*model.Testimonial, 0)
	for rows.Next() {
		t := &model.Testimonial{}
		var role sql.NullString
		if err := rows.Scan(&t.ID, &t.Author, &t.Quote, &role); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		t.Role = nullableString(role)
		testimonials = append(testimonials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}

	return testimonials, nil
}

// Create はお客様の声を作成し、採番されたIDを設定する。
func (r *PostgresTestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO testimonials (author, quote, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		t.Author, t.Quote, t.Role,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

// CreateMany は複数のお客様の声を同一トランザクションで作成する。
func (r *PostgresTestimonialRepo) CreateMany(ctx context.Context, testimonials []*model.Testimonial) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range testimonials {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO testimonials (author, quote, role)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			t.Author, t.Quote, t.Role,
		).Scan(&t.ID)
		if err != nil {
			return fmt.Errorf("failed to insert testimonial: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update はauthor、quote、roleを置き換える。対象が存在しない場合はnilを返す。
func (r *PostgresTestimonialRepo) Update(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	updated := &model.Testimonial{}
	var role sql.NullString
	err := r.db.QueryRowContext(ctx,
		`UPDATE testimonials
		 SET author = $2, quote = $3, role = $4
		 WHERE id = $1
		 RETURNING id, author, quote, role`,
		t.ID, t.Author, t.Quote, t.Role,
	).Scan(&updated.ID, &updated.Author, &updated.Quote, &role)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	updated.Role = nullableString(role)
	return updated, nil
}

// Delete は指定IDを削除する。存在しない場合もエラーにしない。
func (r *PostgresTestimonialRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return nil
}

// Count は件数を返す。
func (r *PostgresTestimonialRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM testimonials`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count testimonials: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ TestimonialRepository = (*PostgresTestimonialRepo)(nil)
