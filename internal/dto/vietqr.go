package dto

import (
	"encoding/json"

	"github.com/GregMSThompson/luongnho/internal/models"
)

// BankDirectoryResponse is the raw envelope of the bank directory API.
// Entries stay raw so one malformed bank cannot fail the whole list.
type BankDirectoryResponse struct {
	Code string            `json:"code"`
	Desc string            `json:"desc"`
	Data []json.RawMessage `json:"data"`
}

// BankDirectoryEntry mirrors one directory bank as sent on the wire; it
// carries both spellings the API has used for the short name.
type BankDirectoryEntry struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	Bin               string `json:"bin"`
	ShortName         string `json:"shortName"`
	ShortNameAlt      string `json:"short_name"`
	Logo              string `json:"logo"`
	TransferSupported int    `json:"transferSupported"`
	LookupSupported   int    `json:"lookupSupported"`
	Support           int    `json:"support"`
	IsTransfer        int    `json:"isTransfer"`
	SwiftCode         string `json:"swift_code"`
}

type GenerateQRResponse struct {
	URL           string       `json:"url"`
	AmountDisplay string       `json:"amountDisplay,omitempty"`
	Bank          *models.Bank `json:"bank,omitempty"`
}

type SaveAccountRequest struct {
	BankBin       string `json:"bankBin"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// LoadedAccount is what a saved account puts back into the payment form.
type LoadedAccount struct {
	BankBin       string `json:"bankBin"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}
