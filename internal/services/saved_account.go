package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

type savedAccountStore interface {
	LoadSavedAccounts(ctx context.Context, owner string) ([]models.SavedAccount, error)
	// UpdateSavedAccounts applies fn to the stored list atomically and
	// persists its result. fn may be retried.
	UpdateSavedAccounts(ctx context.Context, owner string, fn func([]models.SavedAccount) ([]models.SavedAccount, error)) ([]models.SavedAccount, error)
}

type bankLookup interface {
	SelectBank(ctx context.Context, bin string) (models.Bank, error)
}

type savedAccountService struct {
	store    savedAccountStore
	banks    bankLookup
	clockNow func() time.Time
	newID    func() string
}

func NewSavedAccountService(store savedAccountStore, banks bankLookup) *savedAccountService {
	return &savedAccountService{
		store:    store,
		banks:    banks,
		clockNow: time.Now,
		newID:    newSavedAccountID,
	}
}

// UUIDv7 carries the creation time in its leading bits.
func newSavedAccountID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *savedAccountService) List(ctx context.Context, owner string) ([]models.SavedAccount, error) {
	return s.store.LoadSavedAccounts(ctx, owner)
}

// Save upserts by (bankBin, accountNumber): a match is updated in place,
// otherwise the account is prepended. The whole list is written back.
func (s *savedAccountService) Save(ctx context.Context, owner string, req dto.SaveAccountRequest) ([]models.SavedAccount, error) {
	log := logger.FromContext(ctx)

	bin := strings.TrimSpace(req.BankBin)
	number := strings.TrimSpace(req.AccountNumber)
	var missing []string
	if bin == "" {
		missing = append(missing, "bankBin")
	}
	if number == "" {
		missing = append(missing, "accountNumber")
	}
	if len(missing) > 0 {
		return nil, errs.NewMissingFieldsError(missingBankOrAccount, missing...)
	}

	entry := models.SavedAccount{
		BankBin:       bin,
		BankShortName: bin,
		AccountNumber: number,
		AccountName:   strings.TrimSpace(req.AccountName),
	}
	if bank, err := s.banks.SelectBank(ctx, bin); err == nil {
		entry.BankShortName = bank.ShortName
		entry.BankLogo = bank.Logo
	} else {
		log.Debug("saving account for bank missing from directory", "bank_bin", bin)
	}

	newID, now := s.newID(), s.clockNow()
	updated := false
	accounts, err := s.store.UpdateSavedAccounts(ctx, owner, func(current []models.SavedAccount) ([]models.SavedAccount, error) {
		updated = false
		next := entry
		for i, acc := range current {
			if acc.SameKey(bin, number) {
				next.ID = acc.ID
				next.CreatedAt = acc.CreatedAt
				current[i] = next
				updated = true
				return current, nil
			}
		}
		next.ID = newID
		next.CreatedAt = now
		return append([]models.SavedAccount{next}, current...), nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("saved account stored", "bank_bin", bin, "updated", updated)
	return accounts, nil
}

func (s *savedAccountService) Delete(ctx context.Context, owner, id string) ([]models.SavedAccount, error) {
	remaining, err := s.store.UpdateSavedAccounts(ctx, owner, func(current []models.SavedAccount) ([]models.SavedAccount, error) {
		kept := make([]models.SavedAccount, 0, len(current))
		for _, acc := range current {
			if acc.ID != id {
				kept = append(kept, acc)
			}
		}
		if len(kept) == len(current) {
			return nil, errs.NewNotFoundError("saved account not found")
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("saved account deleted", "account_id", id)
	return remaining, nil
}

// Load returns the fields a saved account puts back into the payment form.
func (s *savedAccountService) Load(ctx context.Context, owner, id string) (dto.LoadedAccount, error) {
	accounts, err := s.store.LoadSavedAccounts(ctx, owner)
	if err != nil {
		return dto.LoadedAccount{}, err
	}
	for _, acc := range accounts {
		if acc.ID == id {
			return dto.LoadedAccount{
				BankBin:       acc.BankBin,
				AccountNumber: acc.AccountNumber,
				AccountName:   acc.AccountName,
			}, nil
		}
	}
	return dto.LoadedAccount{}, errs.NewNotFoundError("saved account not found")
}
