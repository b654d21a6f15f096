package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"planning-sync/errors"
)

type ICompanyRepository interface {
	Create(ctx context.Context, company Company) error
	Get(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, company Company) error
	Delete(ctx context.Context, id string) error
}

type Company struct {
	ID    string
	Name  string
	Email string
}

type CompanyRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewCompanyRepository(db *sql.DB, logger *slog.Logger) ICompanyRepository {
	return &CompanyRepository{db: db, log: logger}
}

func (r *CompanyRepository) Create(ctx context.Context, company Company) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin company create", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM Company WHERE CompanyId = ?`, company.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: company %q", errors.ErrDuplicateID, company.ID)
	}
	if err != sql.ErrNoRows {
		return storageErr("check company", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO Company (CompanyId, Name, Email) VALUES (?, ?, ?)`,
		company.ID, company.Name, company.Email,
	)
	if err != nil {
		return storageErr("insert company", err)
	}
	return commit(tx, "company create")
}

func (r *CompanyRepository) Get(ctx context.Context, id string) (Company, error) {
	var company Company
	err := r.db.QueryRowContext(ctx,
		`SELECT CompanyId, Name, Email FROM Company WHERE CompanyId = ?`, id,
	).Scan(&company.ID, &company.Name, &company.Email)
	if err == sql.ErrNoRows {
		return Company{}, fmt.Errorf("%w: company %q", errors.ErrNotFound, id)
	}
	if err != nil {
		return Company{}, storageErr("select company", err)
	}
	return company, nil
}

// Update applies the same merge-by-fallback semantics as the user
// repository: empty incoming fields retain the stored values.
func (r *CompanyRepository) Update(ctx context.Context, company Company) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin company update", err)
	}
	defer tx.Rollback()

	var current Company
	err = tx.QueryRowContext(ctx,
		`SELECT Name, Email FROM Company WHERE CompanyId = ?`, company.ID,
	).Scan(&current.Name, &current.Email)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: company %q", errors.ErrNotFound, company.ID)
	}
	if err != nil {
		return storageErr("select company", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE Company SET Name = ?, Email = ? WHERE CompanyId = ?`,
		fallback(company.Name, current.Name),
		fallback(company.Email, current.Email),
		company.ID,
	)
	if err != nil {
		return storageErr("update company", err)
	}
	return commit(tx, "company update")
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM Company WHERE CompanyId = ?`, id); err != nil {
		return storageErr("delete company", err)
	}
	return nil
}
