package model

import "github.com/shopspring/decimal"

// OcrResult is what the extraction service read from a receipt.
// Every field is untrusted. Date is kept raw so callers can tell an absent or
// malformed value from a real one.
type OcrResult struct {
	Category    string          `json:"category"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Currency    string          `json:"currency"`
	RawText     string          `json:"rawText"`
	Amount      decimal.Decimal `json:"amount"`
	Confidence  float64         `json:"confidence"`
}
