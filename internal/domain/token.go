package domain

import "time"

// LaunchedToken is a marketplace record keyed by symbol. Launch is an upsert,
// so re-announcing a symbol replaces the prior record.
type LaunchedToken struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	TxHash    string   `json:"tx_hash"`
	Creator   string   `json:"creator,omitempty"`
	Supply    *int64   `json:"supply,omitempty"`
	BasePrice *float64 `json:"base_price,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
