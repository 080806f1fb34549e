package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bizpage/internal/model"
)

const profileColumns = `id, name, tagline, description, phone, email, address,
		        primary_color, secondary_color, accent_color`

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// Get はプロフィールを取得する。未作成の場合はnilを返す。
func (r *PostgresProfileRepo) Get(ctx context.Context) (*model.BusinessProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+`
		 FROM business_profile WHERE id = $1`,
		model.ProfileID,
	)

	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business profile: %w", err)
	}
	return profile, nil
}

// Create はプロフィールを固定IDで作成する。既に存在する場合は何もしない。
func (r *PostgresProfileRepo) Create(ctx context.Context, p *model.BusinessProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO business_profile (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO NOTHING`,
		model.ProfileID, p.Name, p.Tagline, p.Description, p.Phone, p.Email, p.Address,
		p.PrimaryColor, p.SecondaryColor, p.AccentColor,
	)
	if err != nil {
		return fmt.Errorf("failed to create business profile: %w", err)
	}
	return nil
}

// Update は編集可能な全項目を置き換え、更新後の行を返す。
// nilの項目はNULLで上書きされる。
func (r *PostgresProfileRepo) Update(ctx context.Context, p *model.BusinessProfile) (*model.BusinessProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE business_profile
		 SET name = $2,
		     tagline = $3,
		     description = $4,
		     phone = $5,
		     email = $6,
		     address = $7,
		     primary_color = $8,
		     secondary_color = $9,
		     accent_color = $10
		 WHERE id = $1
		 RETURNING `+profileColumns,
		model.ProfileID, p.Name, p.Tagline, p.Description, p.Phone, p.Email, p.Address,
		p.PrimaryColor, p.SecondaryColor, p.AccentColor,
	)

	updated, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update business profile: %w", err)
	}
	return updated, nil
}

// Count はプロフィールの行数を返す。
func (r *PostgresProfileRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM business_profile`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count business profile: %w", err)
	}
	return count, nil
}

func scanProfile(row *sql.Row) (*model.BusinessProfile, error) {
	p := &model.BusinessProfile{}
	var tagline, description, phone, email, address sql.NullString
	var primary, secondary, accent sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &tagline, &description, &phone, &email, &address,
		&primary, &secondary, &accent,
	)
	if err != nil {
		return nil, err
	}

	p.Tagline = nullableString(tagline)
	p.Description = nullableString(description)
	p.Phone = nullableString(phone)
	p.Email = nullableString(email)
	p.Address = nullableString(address)
	p.PrimaryColor = nullableString(primary)
	p.SecondaryColor = nullableString(secondary)
	p.AccentColor = nullableString(accent)
	return p, nil
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
