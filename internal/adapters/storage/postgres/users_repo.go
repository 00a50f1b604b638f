package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animint/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create es un solo INSERT: la unicidad de identidad y nombre la garantizan
// los índices, no un chequeo separado.
func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (identity, name, credential_hash, verified, registered_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		u.Identity,
		u.Name,
		u.CredentialHash,
		u.Verified,
		u.RegisteredAt,
	)
	if isUniqueViolation(err) {
		return users.ErrConflict
	}
	return err
}

func (r *UsersRepo) GetByIdentity(ctx context.Context, identity string) (users.User, error) {
	return r.getOne(ctx, `
		SELECT identity, name, credential_hash, verified, registered_at
		FROM users
		WHERE identity = $1
	`, identity)
}

func (r *UsersRepo) GetByName(ctx context.Context, name string) (users.User, error) {
	if name == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `
		SELECT identity, name, credential_hash, verified, registered_at
		FROM users
		WHERE name = $1
	`, name)
}

func (r *UsersRepo) getOne(ctx context.Context, query, arg string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var u users.User
	if err := row.Scan(&u.Identity, &u.Name, &u.CredentialHash, &u.Verified, &u.RegisteredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) SetVerified(ctx context.Context, identity string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET verified = TRUE WHERE identity = $1
	`, identity)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT identity, name, credential_hash, verified, registered_at
		FROM users
		ORDER BY registered_at ASC, identity ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.Identity, &u.Name, &u.CredentialHash, &u.Verified, &u.RegisteredAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
