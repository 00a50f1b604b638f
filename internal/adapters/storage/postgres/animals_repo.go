package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animint/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, microchip_id, species, breed, name,
	owner, breeder, sire, dam, dna_hash,
	birth_date, verified
`

// CreateAnimal es un solo INSERT: la unicidad del chip la garantiza el índice.
func (r *AnimalsRepo) CreateAnimal(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, microchip_id, species, breed, name,
			owner, breeder, sire, dam, dna_hash,
			birth_date, verified
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.MicrochipID,
		a.Species,
		a.Breed,
		a.Name,
		a.Owner,
		a.Breeder,
		toNullString(a.Sire),
		toNullString(a.Dam),
		toNullString(a.DNAHash),
		a.BirthDate,
		a.Verified,
	)
	if isUniqueViolation(err) {
		return animals.ErrDuplicateMicrochip
	}
	return err
}

func (r *AnimalsRepo) GetAnimal(ctx context.Context, id string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) GetByMicrochip(ctx context.Context, chip string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE microchip_id = $1
	`, chip)
	return scanAnimal(row)
}

// UpdateAnimal toca solo los campos mutables: owner y verified.
// Breeder, parentesco y chip quedan fijos al alta.
func (r *AnimalsRepo) UpdateAnimal(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals SET owner = $2, verified = $3 WHERE id = $1
	`, a.ID, a.Owner, a.Verified)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) ListAll(ctx context.Context) ([]animals.Animal, error) {
	return r.list(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		ORDER BY birth_date ASC, id ASC
	`)
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, owner string) ([]animals.Animal, error) {
	return r.list(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE owner = $1
		ORDER BY birth_date ASC, id ASC
	`, owner)
}

func (r *AnimalsRepo) ListByBreeder(ctx context.Context, breeder string) ([]animals.Animal, error) {
	return r.list(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE breeder = $1
		ORDER BY birth_date ASC, id ASC
	`, breeder)
}

func (r *AnimalsRepo) list(ctx context.Context, query string, args ...any) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) CreateLitter(ctx context.Context, l animals.Litter) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO litters (id, sire, dam, breeder, birth_date)
		VALUES ($1,$2,$3,$4,$5)
	`, l.ID, l.Sire, l.Dam, l.Breeder, l.BirthDate)
	if err != nil {
		return err
	}

	for i, animalID := range l.Offspring {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO litter_offspring (litter_id, position, animal_id)
			VALUES ($1,$2,$3)
		`, l.ID, i, animalID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *AnimalsRepo) GetLitter(ctx context.Context, id string) (animals.Litter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, sire, dam, breeder, birth_date
		FROM litters
		WHERE id = $1
	`, id)

	var l animals.Litter
	if err := row.Scan(&l.ID, &l.Sire, &l.Dam, &l.Breeder, &l.BirthDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Litter{}, animals.ErrLitterNotFound
		}
		return animals.Litter{}, err
	}

	offspring, err := r.litterOffspring(ctx, l.ID)
	if err != nil {
		return animals.Litter{}, err
	}
	l.Offspring = offspring
	return l, nil
}

func (r *AnimalsRepo) ListLitters(ctx context.Context) ([]animals.Litter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sire, dam, breeder, birth_date
		FROM litters
		ORDER BY birth_date ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Litter, 0)
	for rows.Next() {
		var l animals.Litter
		if err := rows.Scan(&l.ID, &l.Sire, &l.Dam, &l.Breeder, &l.BirthDate); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		offspring, err := r.litterOffspring(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Offspring = offspring
	}
	return out, nil
}

func (r *AnimalsRepo) litterOffspring(ctx context.Context, litterID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT animal_id
		FROM litter_offspring
		WHERE litter_id = $1
		ORDER BY position ASC
	`, litterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var sire, dam, dna sql.NullString

	err := row.Scan(
		&a.ID,
		&a.MicrochipID,
		&a.Species,
		&a.Breed,
		&a.Name,
		&a.Owner,
		&a.Breeder,
		&sire,
		&dam,
		&dna,
		&a.BirthDate,
		&a.Verified,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}

	a.Sire = fromNullString(sire)
	a.Dam = fromNullString(dam)
	a.DNAHash = fromNullString(dna)
	return a, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
