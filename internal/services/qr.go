package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/internal/money"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

const missingBankOrAccount = "Vui lòng chọn ngân hàng và nhập số tài khoản."

type bankDirectory interface {
	FetchBanks(ctx context.Context) ([]models.Bank, error)
	ImageURL(data models.QRData) string
	FetchImage(ctx context.Context, imageURL string) (io.ReadCloser, string, error)
}

type qrService struct {
	directory bankDirectory

	mu     sync.Mutex
	loaded bool
	banks  []models.Bank
}

func NewQRService(directory bankDirectory) *qrService {
	return &qrService{directory: directory}
}

// Banks returns the bank directory. It is fetched on first use only; a
// failed fetch leaves the list empty for the life of the process.
func (s *qrService) Banks(ctx context.Context) []models.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.banks
	}
	s.loaded = true

	log := logger.FromContext(ctx)
	banks, err := s.directory.FetchBanks(context.WithoutCancel(ctx))
	if err != nil {
		log.Warn("bank directory unavailable, continuing with empty list", "error", err)
		s.banks = []models.Bank{}
		return s.banks
	}
	s.banks = banks
	log.Info("bank directory loaded", "count", len(banks))
	return s.banks
}

// SearchBanks filters the directory by a case-insensitive substring of the
// name, short name or bin. The term is matched as typed, surrounding spaces
// included. An empty term matches everything.
func (s *qrService) SearchBanks(ctx context.Context, term string) []models.Bank {
	banks := s.Banks(ctx)
	if term == "" {
		return banks
	}
	needle := strings.ToLower(term)

	out := make([]models.Bank, 0, len(banks))
	for _, b := range banks {
		if strings.Contains(strings.ToLower(b.Name), needle) ||
			strings.Contains(strings.ToLower(b.ShortName), needle) ||
			strings.Contains(strings.ToLower(b.Bin), needle) {
			out = append(out, b)
		}
	}
	return out
}

func (s *qrService) SelectBank(ctx context.Context, bin string) (models.Bank, error) {
	bin = strings.TrimSpace(bin)
	for _, b := range s.Banks(ctx) {
		if b.Bin == bin {
			return b, nil
		}
	}
	return models.Bank{}, errs.NewNotFoundError("bank not found: " + bin)
}

func (s *qrService) Templates() []models.TemplateOption {
	return models.TemplateOptions
}

// Generate validates the form and derives the image URL. Nothing is
// requested from the image host here.
func (s *qrService) Generate(ctx context.Context, data models.QRData) (dto.GenerateQRResponse, error) {
	data, err := normalizeQRData(data)
	if err != nil {
		return dto.GenerateQRResponse{}, err
	}

	out := dto.GenerateQRResponse{
		URL:           s.directory.ImageURL(data),
		AmountDisplay: money.FormatInput(data.Amount),
	}
	if bank, err := s.SelectBank(ctx, data.BankBin); err == nil {
		out.Bank = &bank
	}

	log := logger.FromContext(ctx)
	log.Info("qr generated", "bank_bin", data.BankBin, "template", data.Template)
	if logger.IsDebugEnabled(ctx) {
		log.Debug("qr image url", "url", out.URL)
	}
	return out, nil
}

// Image validates the form and fetches the rendered PNG.
func (s *qrService) Image(ctx context.Context, data models.QRData) (io.ReadCloser, string, error) {
	data, err := normalizeQRData(data)
	if err != nil {
		return nil, "", err
	}
	return s.directory.FetchImage(ctx, s.directory.ImageURL(data))
}

func normalizeQRData(data models.QRData) (models.QRData, error) {
	data.BankBin = strings.TrimSpace(data.BankBin)
	data.AccountNumber = strings.TrimSpace(data.AccountNumber)
	data.AccountName = strings.TrimSpace(data.AccountName)
	data.Description = strings.TrimSpace(data.Description)
	data.Amount = money.DigitsOnly(data.Amount)

	var missing []string
	if data.BankBin == "" {
		missing = append(missing, "bankBin")
	}
	if data.AccountNumber == "" {
		missing = append(missing, "accountNumber")
	}
	if len(missing) > 0 {
		return data, errs.NewMissingFieldsError(missingBankOrAccount, missing...)
	}

	if data.Template == "" {
		data.Template = models.TemplateCompact2
	}
	if !data.Template.Valid() {
		return data, errs.NewValidationError("unknown template: " + string(data.Template))
	}
	return data, nil
}
