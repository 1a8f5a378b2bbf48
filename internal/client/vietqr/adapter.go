package vietqrclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

const serviceName = "vietqr"

// Adapter talks to the public VietQR endpoints: the bank directory and the
// QR image renderer.
type Adapter struct {
	client    *http.Client
	banksURL  string
	imageHost string
}

func NewAdapter(client *http.Client, banksURL, imageHost string) *Adapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Adapter{
		client:    client,
		banksURL:  banksURL,
		imageHost: strings.TrimSuffix(imageHost, "/"),
	}
}

// FetchBanks downloads the bank directory. Entries that fail to decode or
// lack a bin or short name are dropped.
func (a *Adapter) FetchBanks(ctx context.Context) ([]models.Bank, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.banksURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "bank directory request failed", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewExternalServiceError(serviceName, "bank directory request failed",
			resp.StatusCode >= 500, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var envelope dto.BankDirectoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "bank directory response unreadable", false, err)
	}

	banks, dropped := parseBanks(envelope.Data)
	if dropped > 0 {
		logger.FromContext(ctx).Warn("dropped malformed bank directory entries", "dropped", dropped, "kept", len(banks))
	}
	return banks, nil
}

func parseBanks(raw []json.RawMessage) ([]models.Bank, int) {
	banks := make([]models.Bank, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		var entry dto.BankDirectoryEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			dropped++
			continue
		}
		shortName := strings.TrimSpace(entry.ShortName)
		if shortName == "" {
			shortName = strings.TrimSpace(entry.ShortNameAlt)
		}
		bin := strings.TrimSpace(entry.Bin)
		if bin == "" || shortName == "" {
			dropped++
			continue
		}
		banks = append(banks, models.Bank{
			ID:                entry.ID,
			Name:              entry.Name,
			Code:              entry.Code,
			Bin:               bin,
			ShortName:         shortName,
			Logo:              entry.Logo,
			TransferSupported: entry.TransferSupported,
			LookupSupported:   entry.LookupSupported,
			Support:           entry.Support,
			IsTransfer:        entry.IsTransfer,
			SwiftCode:         entry.SwiftCode,
		})
	}
	return banks, dropped
}

// ImageURL builds the deterministic image request for a payment form.
// Query parameters keep the order amount, addInfo, accountName and are
// present only when non-empty.
func (a *Adapter) ImageURL(data models.QRData) string {
	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(a.imageHost)
	b.WriteString("/image/")
	b.WriteString(url.PathEscape(data.BankBin))
	b.WriteByte('-')
	b.WriteString(url.PathEscape(data.AccountNumber))
	b.WriteByte('-')
	b.WriteString(url.PathEscape(string(data.Template)))
	b.WriteString(".png")

	sep := byte('?')
	appendParam := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteByte(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
		sep = '&'
	}
	appendParam("amount", data.Amount)
	appendParam("addInfo", data.Description)
	appendParam("accountName", data.AccountName)

	return b.String()
}

// FetchImage downloads a rendered QR image. The caller closes the body.
func (a *Adapter) FetchImage(ctx context.Context, imageURL string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, "", errs.NewExternalServiceError(serviceName, "qr image request failed", true, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", errs.NewExternalServiceError(serviceName, "qr image request failed",
			resp.StatusCode >= 500, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return resp.Body, contentType, nil
}
