package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/pkg/helpers"
)

// --- fakes ---

// fakeSavedAccountStore serialises updates the way a store transaction does.
type fakeSavedAccountStore struct {
	mu        sync.Mutex
	lists     map[string][]models.SavedAccount
	saveCalls int
	loadErr   error
	saveErr   error
}

func newFakeSavedAccountStore() *fakeSavedAccountStore {
	return &fakeSavedAccountStore{lists: make(map[string][]models.SavedAccount)}
}

func (f *fakeSavedAccountStore) LoadSavedAccounts(ctx context.Context, owner string) ([]models.SavedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]models.SavedAccount{}, f.lists[owner]...), nil
}

func (f *fakeSavedAccountStore) UpdateSavedAccounts(ctx context.Context, owner string, fn func([]models.SavedAccount) ([]models.SavedAccount, error)) ([]models.SavedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	next, err := fn(append([]models.SavedAccount{}, f.lists[owner]...))
	if err != nil {
		return nil, err
	}
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.lists[owner] = append([]models.SavedAccount{}, next...)
	return next, nil
}

type fakeBankLookup struct {
	banks map[string]models.Bank
}

func (f *fakeBankLookup) SelectBank(ctx context.Context, bin string) (models.Bank, error) {
	if b, ok := f.banks[bin]; ok {
		return b, nil
	}
	return models.Bank{}, errs.NewNotFoundError("bank not found")
}

func newTestSavedAccountService(store *fakeSavedAccountStore) *savedAccountService {
	banks := &fakeBankLookup{banks: map[string]models.Bank{
		"970436": {Bin: "970436", ShortName: "Vietcombank", Logo: "https://logo/vcb.png"},
		"970418": {Bin: "970418", ShortName: "BIDV", Logo: "https://logo/bidv.png"},
	}}
	svc := NewSavedAccountService(store, banks)

	var (
		idMu sync.Mutex
		seq  int
	)
	svc.newID = func() string {
		idMu.Lock()
		defer idMu.Unlock()
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	svc.clockNow = func() time.Time { return time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// --- tests ---

func TestSavedAccountSavePrependsNewest(t *testing.T) {
	store := newFakeSavedAccountStore()
	svc := newTestSavedAccountService(store)
	ctx := helpers.TestCtx()

	if _, err := svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970436", AccountNumber: "111", AccountName: "NGUYEN A"}); err != nil {
		t.Fatalf("Save #1: %v", err)
	}
	list, err := svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970418", AccountNumber: "222", AccountName: "TRAN B"})
	if err != nil {
		t.Fatalf("Save #2: %v", err)
	}

	if len(list) != 2 || list[0].ID != "id-2" || list[1].ID != "id-1" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].BankShortName != "BIDV" || list[0].BankLogo != "https://logo/bidv.png" {
		t.Fatalf("bank details not resolved: %+v", list[0])
	}
	if len(store.lists["u1"]) != 2 {
		t.Fatalf("list not persisted: %+v", store.lists["u1"])
	}
}

func TestSavedAccountSaveDuplicateKeepsOneEntryWithLatestName(t *testing.T) {
	store := newFakeSavedAccountStore()
	svc := newTestSavedAccountService(store)
	ctx := helpers.TestCtx()

	_, _ = svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970436", AccountNumber: "111", AccountName: "OLD NAME"})
	_, _ = svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970418", AccountNumber: "222", AccountName: "TRAN B"})
	list, err := svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970436", AccountNumber: "111", AccountName: "NEW NAME"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	persisted := store.lists["u1"]
	if len(persisted) != 2 || len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(persisted))
	}
	matches := 0
	for _, acc := range persisted {
		if acc.BankBin == "970436" && acc.AccountNumber == "111" {
			matches++
			if acc.AccountName != "NEW NAME" {
				t.Fatalf("name not refreshed: %+v", acc)
			}
			if acc.ID != "id-1" {
				t.Fatalf("id should be kept on update, got %q", acc.ID)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("found %d entries for the pair, want 1", matches)
	}
	if persisted[1].BankBin != "970436" {
		t.Fatalf("updated entry should stay in place: %+v", persisted)
	}
}

func TestSavedAccountConcurrentSavesOfSameAccount(t *testing.T) {
	store := newFakeSavedAccountStore()
	svc := newTestSavedAccountService(store)
	ctx := helpers.TestCtx()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := dto.SaveAccountRequest{BankBin: "970436", AccountNumber: "111", AccountName: fmt.Sprintf("NAME %d", i)}
			if _, err := svc.Save(ctx, "u1", req); err != nil {
				t.Errorf("Save %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(store.lists["u1"]); got != 1 {
		t.Fatalf("expected one entry for the pair, got %d", got)
	}
}

func TestSavedAccountSameAccountDifferentBankIsDistinct(t *testing.T) {
	store := newFakeSavedAccountStore()
	svc := newTestSavedAccountService(store)
	ctx := helpers.TestCtx()

	_, _ = svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970436", AccountNumber: "111"})
	list, _ := svc.Save(ctx, "u1", dto.SaveAccountRequest{BankBin: "970418", AccountNumber: "111"})
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %+v", list)
	}
}

func TestSavedAccountSaveRequiresBankAndNumber(t *testing.T) {
	store := newFakeSavedAccountStore()
	svc := newTestSavedAccountService(store)

	_, err := svc.Save(helpers.TestCtx(), "u1", dto.SaveAccountRequest{BankBin: "970436"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "accountNumber" {
		t.Fatalf("fields = %v", ve.Fields)
	}
	if store.saveCalls != 0 {
		t.Fatalf("store written on invalid input")
	}
}

func TestSavedAccountSaveUnknownBankFallsBackToBin(t *testing.T) {
	store := newFakeSavedAccountStore()
	svc := newTestSavedAccountService(store)

	list, err := svc.Save(helpers.TestCtx(), "u1", dto.SaveAccountRequest{BankBin: "970999", AccountNumber: "9"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if list[0].BankShortName != "970999" || list[0].BankLogo != "" {
		t.Fatalf("unexpected fallback: %+v", list[0])
	}
}

func TestSavedAccountDeleteKeepsOrder(t *testing.T) {
	store := newFakeSavedAccountStore()
	store.lists["u1"] = []models.SavedAccount{
		{ID: "a", BankBin: "1", AccountNumber: "1"},
		{ID: "b", BankBin: "2", AccountNumber: "2"},
		{ID: "c", BankBin: "3", AccountNumber: "3"},
		{ID: "d", BankBin: "4", AccountNumber: "4"},
	}
	svc := newTestSavedAccountService(store)

	remaining, err := svc.Delete(helpers.TestCtx(), "u1", "b")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{"a", "c", "d"}
	if len(remaining) != len(want) {
		t.Fatalf("remaining = %+v", remaining)
	}
	for i, id := range want {
		if remaining[i].ID != id || store.lists["u1"][i].ID != id {
			t.Fatalf("order changed at %d: %+v", i, store.lists["u1"])
		}
	}
}

func TestSavedAccountDeleteUnknownID(t *testing.T) {
	store := newFakeSavedAccountStore()
	store.lists["u1"] = []models.SavedAccount{{ID: "a"}}
	svc := newTestSavedAccountService(store)

	_, err := svc.Delete(helpers.TestCtx(), "u1", "zzz")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Fatalf("store written for a no-op delete")
	}
}

func TestSavedAccountLoad(t *testing.T) {
	store := newFakeSavedAccountStore()
	store.lists["u1"] = []models.SavedAccount{
		{ID: "a", BankBin: "970436", BankShortName: "Vietcombank", AccountNumber: "0011001234", AccountName: "NGUYEN VAN A"},
	}
	svc := newTestSavedAccountService(store)

	got, err := svc.Load(helpers.TestCtx(), "u1", "a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := dto.LoadedAccount{BankBin: "970436", AccountNumber: "0011001234", AccountName: "NGUYEN VAN A"}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if _, err := svc.Load(helpers.TestCtx(), "u2", "a"); err == nil {
		t.Fatalf("other owner should not see the account")
	}
}

func TestSavedAccountStoreErrorsPropagate(t *testing.T) {
	store := newFakeSavedAccountStore()
	store.saveErr = errs.NewDatabaseError("update", "failed", errors.New("disk full"))
	svc := newTestSavedAccountService(store)

	_, err := svc.Save(helpers.TestCtx(), "u1", dto.SaveAccountRequest{BankBin: "970436", AccountNumber: "1"})
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}

func TestNewSavedAccountIDIsTimeOrdered(t *testing.T) {
	first := newSavedAccountID()
	time.Sleep(2 * time.Millisecond)
	second := newSavedAccountID()
	if first == second || first > second {
		t.Fatalf("ids not increasing: %s then %s", first, second)
	}
}
