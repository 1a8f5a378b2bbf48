package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/pkg/helpers"
)

// --- fakes ---

type fakeDirectory struct {
	mu         sync.Mutex
	banks      []models.Bank
	fetchErr   error
	fetchCalls int
	imageCalls int
	imageURLs  []string
}

func (f *fakeDirectory) FetchBanks(ctx context.Context) ([]models.Bank, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	return f.banks, f.fetchErr
}

func (f *fakeDirectory) ImageURL(data models.QRData) string {
	return "https://img.test/image/" + data.BankBin + "-" + data.AccountNumber + "-" + string(data.Template) + ".png"
}

func (f *fakeDirectory) FetchImage(ctx context.Context, imageURL string) (io.ReadCloser, string, error) {
	f.imageCalls++
	f.imageURLs = append(f.imageURLs, imageURL)
	return io.NopCloser(strings.NewReader("png")), "image/png", nil
}

func testBanks() []models.Bank {
	return []models.Bank{
		{ID: 17, Name: "Ngân hàng TMCP Ngoại Thương Việt Nam", Code: "VCB", Bin: "970436", ShortName: "Vietcombank", Logo: "https://logo/vcb.png"},
		{ID: 4, Name: "Ngân hàng TMCP Đầu tư và Phát triển Việt Nam", Code: "BIDV", Bin: "970418", ShortName: "BIDV", Logo: "https://logo/bidv.png"},
		{ID: 21, Name: "VCB Securities Test Bank", Code: "TST", Bin: "970999", ShortName: "TestBank"},
		{ID: 30, Name: "Ngân hàng TMCP Quân đội", Code: "MB", Bin: "970422", ShortName: "MBBank"},
	}
}

// --- tests ---

func TestQRServiceBanksFetchedOnce(t *testing.T) {
	dir := &fakeDirectory{banks: testBanks()}
	svc := NewQRService(dir)
	ctx := helpers.TestCtx()

	for i := 0; i < 3; i++ {
		if got := svc.Banks(ctx); len(got) != 4 {
			t.Fatalf("Banks() len = %d, want 4", len(got))
		}
	}
	if dir.fetchCalls != 1 {
		t.Fatalf("FetchBanks called %d times, want 1", dir.fetchCalls)
	}
}

func TestQRServiceBanksFailureDegradesWithoutRetry(t *testing.T) {
	dir := &fakeDirectory{fetchErr: errors.New("connection refused")}
	svc := NewQRService(dir)
	ctx := helpers.TestCtx()

	if got := svc.Banks(ctx); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
	if got := svc.SearchBanks(ctx, "vcb"); len(got) != 0 {
		t.Fatalf("expected empty search, got %d", len(got))
	}
	if dir.fetchCalls != 1 {
		t.Fatalf("FetchBanks called %d times, want 1 (no retry)", dir.fetchCalls)
	}
}

func TestQRServiceSearchBanks(t *testing.T) {
	svc := NewQRService(&fakeDirectory{banks: testBanks()})
	ctx := helpers.TestCtx()

	cases := []struct {
		term string
		bins []string
	}{
		{"vcb", []string{"970999"}},
		{"VIETCOM", []string{"970436"}},
		{"ngân hàng tmcp", []string{"970436", "970418", "970422"}},
		{"9704", []string{"970436", "970418", "970422"}},
		{"970418", []string{"970418"}},
		{"", []string{"970436", "970418", "970999", "970422"}},
		{"nothing-matches", nil},
		{" vcb", nil},
		{"tmcp q", []string{"970422"}},
	}

	for _, tc := range cases {
		got := svc.SearchBanks(ctx, tc.term)
		if len(got) != len(tc.bins) {
			t.Fatalf("SearchBanks(%q) returned %d banks, want %d: %+v", tc.term, len(got), len(tc.bins), got)
		}
		for i, b := range got {
			if b.Bin != tc.bins[i] {
				t.Fatalf("SearchBanks(%q)[%d] = %s, want %s", tc.term, i, b.Bin, tc.bins[i])
			}
		}
	}
}

func TestQRServiceSearchMatchesShortNameCaseInsensitively(t *testing.T) {
	banks := []models.Bank{
		{Name: "Bank One", ShortName: "VCBank", Bin: "1"},
		{Name: "Bank Two", ShortName: "Other", Bin: "2"},
		{Name: "Bank vcb three", ShortName: "Third", Bin: "3"},
	}
	svc := NewQRService(&fakeDirectory{banks: banks})

	got := svc.SearchBanks(helpers.TestCtx(), "vcb")
	if len(got) != 2 || got[0].Bin != "1" || got[1].Bin != "3" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestQRServiceSelectBank(t *testing.T) {
	svc := NewQRService(&fakeDirectory{banks: testBanks()})
	ctx := helpers.TestCtx()

	bank, err := svc.SelectBank(ctx, "970418")
	if err != nil || bank.ShortName != "BIDV" {
		t.Fatalf("SelectBank = %+v, %v", bank, err)
	}

	_, err = svc.SelectBank(ctx, "000000")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
}

func TestQRServiceGenerate(t *testing.T) {
	svc := NewQRService(&fakeDirectory{banks: testBanks()})

	resp, err := svc.Generate(helpers.TestCtx(), models.QRData{
		BankBin:       " 970436 ",
		AccountNumber: "0011001234",
		Amount:        "500,000",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp.URL != "https://img.test/image/970436-0011001234-compact2.png" {
		t.Fatalf("URL = %q (default template should be compact2)", resp.URL)
	}
	if resp.Bank == nil || resp.Bank.ShortName != "Vietcombank" {
		t.Fatalf("bank not attached: %+v", resp.Bank)
	}
	if resp.AmountDisplay != "500,000" {
		t.Fatalf("AmountDisplay = %q, want 500,000", resp.AmountDisplay)
	}
}

func TestQRServiceGenerateAmountDisplay(t *testing.T) {
	svc := NewQRService(&fakeDirectory{banks: testBanks()})

	cases := map[string]string{
		"":         "",
		"1500000":  "1,500,000",
		"00020000": "20,000",
		"0":        "0",
		"abc":      "",
	}
	for amount, want := range cases {
		resp, err := svc.Generate(helpers.TestCtx(), models.QRData{BankBin: "970436", AccountNumber: "1", Amount: amount})
		if err != nil {
			t.Fatalf("Generate(%q): %v", amount, err)
		}
		if resp.AmountDisplay != want {
			t.Errorf("AmountDisplay for %q = %q, want %q", amount, resp.AmountDisplay, want)
		}
	}
}

func TestQRServiceGenerateMissingFields(t *testing.T) {
	dir := &fakeDirectory{banks: testBanks()}
	svc := NewQRService(dir)

	cases := []struct {
		data   models.QRData
		fields []string
	}{
		{models.QRData{BankBin: "970436"}, []string{"accountNumber"}},
		{models.QRData{AccountNumber: "123"}, []string{"bankBin"}},
		{models.QRData{AccountNumber: "   "}, []string{"bankBin", "accountNumber"}},
	}

	for _, tc := range cases {
		_, err := svc.Generate(helpers.TestCtx(), tc.data)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for %+v, got %v", tc.data, err)
		}
		if strings.Join(ve.Fields, ",") != strings.Join(tc.fields, ",") {
			t.Fatalf("fields = %v, want %v", ve.Fields, tc.fields)
		}
	}
	if dir.imageCalls != 0 {
		t.Fatalf("image requested %d times on invalid input", dir.imageCalls)
	}
}

func TestQRServiceImageNeverFetchedWithoutAccountNumber(t *testing.T) {
	dir := &fakeDirectory{banks: testBanks()}
	svc := NewQRService(dir)

	_, _, err := svc.Image(helpers.TestCtx(), models.QRData{BankBin: "970436", Template: models.TemplatePrint})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if dir.imageCalls != 0 {
		t.Fatalf("FetchImage called %d times, want 0", dir.imageCalls)
	}
}

func TestQRServiceImage(t *testing.T) {
	dir := &fakeDirectory{banks: testBanks()}
	svc := NewQRService(dir)

	body, ct, err := svc.Image(helpers.TestCtx(), models.QRData{BankBin: "970436", AccountNumber: "1", Template: models.TemplateQROnly})
	if err != nil {
		t.Fatalf("Image returned error: %v", err)
	}
	body.Close()
	if ct != "image/png" || dir.imageCalls != 1 {
		t.Fatalf("unexpected image call: ct=%q calls=%d", ct, dir.imageCalls)
	}
	if dir.imageURLs[0] != "https://img.test/image/970436-1-qr_only.png" {
		t.Fatalf("image url = %q", dir.imageURLs[0])
	}
}

func TestQRServiceGenerateRejectsUnknownTemplate(t *testing.T) {
	svc := NewQRService(&fakeDirectory{})

	_, err := svc.Generate(helpers.TestCtx(), models.QRData{BankBin: "1", AccountNumber: "2", Template: "poster"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNormalizeQRDataStripsAmount(t *testing.T) {
	data, err := normalizeQRData(models.QRData{BankBin: "1", AccountNumber: "2", Amount: "1.250.000đ"})
	if err != nil {
		t.Fatalf("normalizeQRData: %v", err)
	}
	if data.Amount != "1250000" {
		t.Fatalf("Amount = %q", data.Amount)
	}
}
