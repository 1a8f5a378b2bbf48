package models

import (
	"time"
)

// SavedAccount is a remembered payee. The list is unique per (BankBin, AccountNumber).
type SavedAccount struct {
	ID            string    `firestore:"id" json:"id"`
	BankBin       string    `firestore:"bankBin" json:"bankBin"`
	BankShortName string    `firestore:"bankShortName" json:"bankShortName"`
	BankLogo      string    `firestore:"bankLogo" json:"bankLogo"`
	AccountNumber string    `firestore:"accountNumber" json:"accountNumber"`
	AccountName   string    `firestore:"accountName" json:"accountName"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}

// SameKey reports whether both entries point at the same bank account.
func (a SavedAccount) SameKey(bankBin, accountNumber string) bool {
	return a.BankBin == bankBin && a.AccountNumber == accountNumber
}
