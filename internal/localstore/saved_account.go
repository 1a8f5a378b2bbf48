package localstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type SavedAccountStore struct {
	db *sql.DB
}

func NewSavedAccountStore(db *sql.DB) *SavedAccountStore {
	return &SavedAccountStore{db: db}
}

func (s *SavedAccountStore) LoadSavedAccounts(ctx context.Context, owner string) ([]models.SavedAccount, error) {
	return loadAccounts(ctx, s.db, owner)
}

// UpdateSavedAccounts reads the owner's list, hands it to fn and writes
// back what fn returns, all in one transaction. An error from fn aborts
// the write and is returned unchanged.
func (s *SavedAccountStore) UpdateSavedAccounts(ctx context.Context, owner string, fn func([]models.SavedAccount) ([]models.SavedAccount, error)) ([]models.SavedAccount, error) {
	var updated []models.SavedAccount
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := loadAccounts(ctx, tx, owner)
		if err != nil {
			return err
		}
		updated, err = fn(current)
		if err != nil {
			return err
		}
		return replaceAccounts(ctx, tx, owner, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func loadAccounts(ctx context.Context, q querier, owner string) ([]models.SavedAccount, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, bank_bin, bank_short_name, bank_logo, account_number, account_name, created_at
		FROM saved_accounts
		WHERE owner = ?
		ORDER BY position`, owner)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load saved accounts", err)
	}
	defer rows.Close()

	out := []models.SavedAccount{}
	for rows.Next() {
		var (
			acc       models.SavedAccount
			createdAt string
		)
		if err := rows.Scan(&acc.ID, &acc.BankBin, &acc.BankShortName, &acc.BankLogo,
			&acc.AccountNumber, &acc.AccountName, &createdAt); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to scan saved account", err)
		}
		acc.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, errs.NewDatabaseError("read", "invalid created_at for saved account "+acc.ID, err)
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to iterate saved accounts", err)
	}
	return out, nil
}

// replaceAccounts rewrites the owner's list in order.
func replaceAccounts(ctx context.Context, tx *sql.Tx, owner string, accounts []models.SavedAccount) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_accounts WHERE owner = ?`, owner); err != nil {
		return errs.NewDatabaseError("update", "failed to clear saved accounts", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO saved_accounts
			(owner, id, bank_bin, bank_short_name, bank_logo, account_number, account_name, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to prepare saved account insert", err)
	}
	defer stmt.Close()

	for i, acc := range accounts {
		if _, err := stmt.ExecContext(ctx, owner, acc.ID, acc.BankBin, acc.BankShortName, acc.BankLogo,
			acc.AccountNumber, acc.AccountName, acc.CreatedAt.UTC().Format(timeLayout), i); err != nil {
			return errs.NewDatabaseError("update", "failed to save accounts", err)
		}
	}
	return nil
}
