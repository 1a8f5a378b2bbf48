package models

type QRTemplate string

const (
	TemplateCompact2 QRTemplate = "compact2"
	TemplateCompact  QRTemplate = "compact"
	TemplateQROnly   QRTemplate = "qr_only"
	TemplatePrint    QRTemplate = "print"
)

type TemplateOption struct {
	ID    QRTemplate `json:"id"`
	Label string     `json:"label"`
}

var TemplateOptions = []TemplateOption{
	{ID: TemplateCompact2, Label: "Rút gọn 2 (Khuyên dùng)"},
	{ID: TemplateCompact, Label: "Rút gọn"},
	{ID: TemplateQROnly, Label: "Chỉ mã QR"},
	{ID: TemplatePrint, Label: "In ấn"},
}

func (t QRTemplate) Valid() bool {
	for _, opt := range TemplateOptions {
		if opt.ID == t {
			return true
		}
	}
	return false
}

// QRData is the payment form.
type QRData struct {
	BankBin       string     `json:"bankBin"`
	AccountNumber string     `json:"accountNumber"`
	AccountName   string     `json:"accountName"`
	Amount        string     `json:"amount"`
	Description   string     `json:"description"`
	Template      QRTemplate `json:"template"`
}
