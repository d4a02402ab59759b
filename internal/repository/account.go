package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/account-service/internal/model"
	"github.com/deppfellow/account-service/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=account.go -destination=../mocks/mock_account_repository.go -package=mocks

const accountsTable = "accounts"

var accountColumns = []string{"id", "name", "email", "address", "phone_number", "date_joined"}

// AccountRepository persists Accounts.
//
// Get and Update return an error wrapping pgx.ErrNoRows when the id has no row.
// Delete of a missing id is not an error.
type AccountRepository interface {
	Create(ctx context.Context, fields model.AccountFields) (*model.Account, error)
	Get(ctx context.Context, id int64) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	Update(ctx context.Context, id int64, fields model.AccountFields) (*model.Account, error)
	Delete(ctx context.Context, id int64) error
}

// accountRepository is the PostgreSQL-backed AccountRepository.
type accountRepository struct {
	db DBTX
}

// NewAccountRepository constructs an AccountRepository on the given pool.
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

// scanAccount reads one row in accountColumns order.
func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		account    model.Account
		phone      *string
		dateJoined time.Time
	)

	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.Address, &phone, &dateJoined); err != nil {
		return nil, err
	}

	if phone != nil {
		account.PhoneNumber = *phone
	}
	account.DateJoined = model.NewDate(dateJoined)

	return &account, nil
}

// nullablePhone stores an empty phone number as NULL.
func nullablePhone(phone string) *string {
	if phone == "" {
		return nil
	}
	return &phone
}

// Create inserts a row and returns it with the store-assigned id.
func (r *accountRepository) Create(ctx context.Context, fields model.AccountFields) (*model.Account, error) {
	query, args, err := psql.Insert(accountsTable).
		Columns("name", "email", "address", "phone_number", "date_joined").
		Values(fields.Name, fields.Email, fields.Address, nullablePhone(fields.PhoneNumber), fields.DateJoined.Time).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert account query: %w", err)
	}

	var account *model.Account
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		created, scanErr := scanAccount(tx.QueryRow(ctx, query, args...))
		account = created
		return scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Get returns the account with the given id.
func (r *accountRepository) Get(ctx context.Context, id int64) (*model.Account, error) {
	query, args, err := psql.Select(accountColumns...).
		From(accountsTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get account query: %w", err)
	}

	account, err := scanAccount(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, sqlerr.WithTable(accountsTable, err))
	}

	return account, nil
}

// List returns every account ordered by id. An empty table yields an empty, non-nil slice.
func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	query, args, err := psql.Select(accountColumns...).
		From(accountsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list accounts query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// Update replaces every mutable column of the account with the given id.
func (r *accountRepository) Update(ctx context.Context, id int64, fields model.AccountFields) (*model.Account, error) {
	query, args, err := psql.Update(accountsTable).
		SetMap(map[string]any{
			"name":         fields.Name,
			"email":        fields.Email,
			"address":      fields.Address,
			"phone_number": nullablePhone(fields.PhoneNumber),
			"date_joined":  fields.DateJoined.Time,
		}).
		Where("id = ?", id).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update account query: %w", err)
	}

	var account *model.Account
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		updated, scanErr := scanAccount(tx.QueryRow(ctx, query, args...))
		account = updated
		return scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update account %d: %w", id, sqlerr.WithTable(accountsTable, err))
	}

	return account, nil
}

// Delete removes the account with the given id. Deleting a missing id succeeds.
func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(accountsTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete account query: %w", err)
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}

	return nil
}

func columnList() string {
	return strings.Join(accountColumns, ", ")
}
