package dto

import (
	"bytes"
	"encoding/json"
)

type CashRow struct {
	Value           int64  `json:"value"`
	Label           string `json:"label"`
	Color           string `json:"color"`
	Count           int64  `json:"count"`
	Subtotal        int64  `json:"subtotal"`
	SubtotalDisplay string `json:"subtotalDisplay"`
}

type CashSummary struct {
	Rows         []CashRow `json:"rows"`
	Total        int64     `json:"total"`
	TotalDisplay string    `json:"totalDisplay"`
}

// SetCountRequest accepts count as a JSON number or as typed text.
type SetCountRequest struct {
	Count json.RawMessage `json:"count"`
}

// CountText returns count as the text the user typed. Numbers keep their
// literal form so the counter can clamp them like any other input.
func (r SetCountRequest) CountText() string {
	raw := bytes.TrimSpace(r.Count)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}
