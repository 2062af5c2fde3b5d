package model

import "encoding/json"

// ValidationError is one entry of the 0x validationErrors array.
type ValidationError struct {
	Field  string `json:"field"`
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// PriceQuote holds the fields of a 0x price response the dashboard reads.
// Raw keeps the full upstream body so it can be relayed unchanged.
type PriceQuote struct {
	Price            string            `json:"price"`
	BuyAmount        string            `json:"buyAmount"`
	SellAmount       string            `json:"sellAmount"`
	EstimatedGas     string            `json:"estimatedGas"`
	ValidationErrors []ValidationError `json:"validationErrors"`

	Raw json.RawMessage `json:"-"`
	// Status is the upstream HTTP status code.
	Status int `json:"-"`
}
