package models

// Bank is one entry of the VietQR bank directory.
type Bank struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	Bin               string `json:"bin"`
	ShortName         string `json:"shortName"`
	Logo              string `json:"logo"`
	TransferSupported int    `json:"transferSupported"`
	LookupSupported   int    `json:"lookupSupported"`
	Support           int    `json:"support"`
	IsTransfer        int    `json:"isTransfer"`
	SwiftCode         string `json:"swiftCode,omitempty"`
}
