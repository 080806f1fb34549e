package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/bizpage/internal/model"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATE。
const uniqueViolation = pq.ErrorCode("23505")

// PostgresOwnerRepo はPostgreSQLを使用したオーナーリポジトリ。
type PostgresOwnerRepo struct {
	db *sql.DB
}

// NewPostgresOwnerRepo はPostgresOwnerRepoを生成する。
func NewPostgresOwnerRepo(db *sql.DB) *PostgresOwnerRepo {
	return &PostgresOwnerRepo{db: db}
}

// FindByUsername はユーザー名の完全一致（大文字小文字を区別）で検索する。
// 見つからない場合はnilを返す。
func (r *PostgresOwnerRepo) FindByUsername(ctx context.Context, username string) (*model.Owner, error) {
	owner := &model.Owner{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM owners WHERE username = $1`,
		username,
	).Scan(&owner.ID, &owner.Username, &owner.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owner by username: %w", err)
	}
	return owner, nil
}

// Create はオーナーを作成し、採番されたIDを設定する。
// ユーザー名が重複する場合はErrDuplicateを返す。
func (r *PostgresOwnerRepo) Create(ctx context.Context, owner *model.Owner) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO owners (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id`,
		owner.Username, owner.PasswordHash,
	).Scan(&owner.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("owner %q: %w", owner.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

// Count はオーナーの件数を返す。
func (r *PostgresOwnerRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM owners`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ OwnerRepository = (*PostgresOwnerRepo)(nil)
