package postgres

import (
	"context"
	"database/sql"

	"animint/internal/domain/certificates"
)

type CertificatesRepo struct {
	db *sql.DB
}

func NewCertificatesRepo(db *sql.DB) *CertificatesRepo {
	return &CertificatesRepo{db: db}
}

// Mint: el débito del fee y el INSERT del certificado van en la misma
// transacción; pasan los dos o ninguno.
func (r *CertificatesRepo) Mint(ctx context.Context, owner, breed, imageRef string, fee uint64) (certificates.Certificate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return certificates.Certificate{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE balances SET amount = amount - $2
		WHERE identity = $1 AND amount >= $2
	`, owner, int64(fee))
	if err != nil {
		return certificates.Certificate{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return certificates.Certificate{}, certificates.ErrInsufficientBalance
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO certificates (owner, breed, image_ref)
		VALUES ($1,$2,$3)
		RETURNING id
	`, owner, breed, imageRef).Scan(&id)
	if err != nil {
		return certificates.Certificate{}, err
	}

	if err := tx.Commit(); err != nil {
		return certificates.Certificate{}, err
	}

	return certificates.Certificate{
		ID:       uint64(id),
		Owner:    owner,
		Breed:    breed,
		ImageRef: imageRef,
	}, nil
}

func (r *CertificatesRepo) ListAll(ctx context.Context) ([]certificates.Certificate, error) {
	return r.list(ctx, `
		SELECT id, owner, breed, image_ref
		FROM certificates
		ORDER BY id ASC
	`)
}

func (r *CertificatesRepo) ListByOwner(ctx context.Context, owner string) ([]certificates.Certificate, error) {
	return r.list(ctx, `
		SELECT id, owner, breed, image_ref
		FROM certificates
		WHERE owner = $1
		ORDER BY id ASC
	`, owner)
}

func (r *CertificatesRepo) list(ctx context.Context, query string, args ...any) ([]certificates.Certificate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]certificates.Certificate, 0)
	for rows.Next() {
		var c certificates.Certificate
		var id int64
		if err := rows.Scan(&id, &c.Owner, &c.Breed, &c.ImageRef); err != nil {
			return nil, err
		}
		c.ID = uint64(id)
		out = append(out, c)
	}
	return out, rows.Err()
}
