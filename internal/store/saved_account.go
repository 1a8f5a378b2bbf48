package store

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
)

type accountCipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// savedAccountsDoc keeps the whole list in one document so its order is
// stored exactly as the user sees it.
type savedAccountsDoc struct {
	Accounts  []models.SavedAccount `firestore:"accounts"`
	UpdatedAt time.Time             `firestore:"updatedAt"`
}

type savedAccountStore struct {
	client *firestore.Client
	cipher accountCipher
}

func NewSavedAccountStore(client *firestore.Client, cipher accountCipher) *savedAccountStore {
	return &savedAccountStore{client: client, cipher: cipher}
}

func (s *savedAccountStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("vietqr").Doc("savedAccounts")
}

func (s *savedAccountStore) LoadSavedAccounts(ctx context.Context, uid string) ([]models.SavedAccount, error) {
	snap, err := s.doc(uid).Get(ctx)
	return s.decode(ctx, snap, err)
}

// UpdateSavedAccounts runs read-modify-write of the owner's list in a
// Firestore transaction, so concurrent instances cannot both insert the
// same (bankBin, accountNumber). fn may run more than once.
func (s *savedAccountStore) UpdateSavedAccounts(ctx context.Context, uid string, fn func([]models.SavedAccount) ([]models.SavedAccount, error)) ([]models.SavedAccount, error) {
	ref := s.doc(uid)
	var updated []models.SavedAccount

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		current, err := s.decode(ctx, snap, err)
		if err != nil {
			return err
		}
		updated, err = fn(current)
		if err != nil {
			return err
		}
		stored, err := s.encode(ctx, updated)
		if err != nil {
			return err
		}
		return tx.Set(ref, stored)
	})
	if err != nil {
		return nil, asStoreError(err, "update", "failed to save accounts")
	}
	return updated, nil
}

func (s *savedAccountStore) decode(ctx context.Context, snap *firestore.DocumentSnapshot, err error) ([]models.SavedAccount, error) {
	if status.Code(err) == codes.NotFound {
		return []models.SavedAccount{}, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load saved accounts", err)
	}

	var stored savedAccountsDoc
	if err := snap.DataTo(&stored); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse saved accounts", err)
	}

	out := make([]models.SavedAccount, 0, len(stored.Accounts))
	for _, acc := range stored.Accounts {
		plain, err := s.cipher.Decrypt(ctx, acc.AccountNumber)
		if err != nil {
			return nil, err
		}
		acc.AccountNumber = plain
		out = append(out, acc)
	}
	return out, nil
}

func (s *savedAccountStore) encode(ctx context.Context, accounts []models.SavedAccount) (savedAccountsDoc, error) {
	stored := savedAccountsDoc{
		Accounts:  make([]models.SavedAccount, 0, len(accounts)),
		UpdatedAt: time.Now(),
	}
	for _, acc := range accounts {
		enc, err := s.cipher.Encrypt(ctx, acc.AccountNumber)
		if err != nil {
			return savedAccountsDoc{}, err
		}
		acc.AccountNumber = enc
		stored.Accounts = append(stored.Accounts, acc)
	}
	return stored, nil
}

// asStoreError keeps typed errors raised inside a transaction and wraps
// anything else (commit, contention) as a DatabaseError.
func asStoreError(err error, operation, message string) error {
	var (
		notFound   *errs.NotFoundError
		validation *errs.ValidationError
		database   *errs.DatabaseError
		encryption *errs.EncryptionError
	)
	if errors.As(err, &notFound) || errors.As(err, &validation) ||
		errors.As(err, &database) || errors.As(err, &encryption) {
		return err
	}
	return errs.NewDatabaseError(operation, message, err)
}
