package model

import "time"

// SystemSetting is a key/value configuration row. Encrypted settings store
// their value as a fernet token.
type SystemSetting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	IsEncrypted bool      `json:"isEncrypted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SyncResult reports the outcome of one portfolio sync run.
type SyncResult struct {
	Summary       PortfolioSummary `json:"summary"`
	Positions     []ValuedPosition `json:"positions"`
	FailedTickers []string         `json:"failedTickers"`
	Stats         LedgerStats      `json:"stats"`
}
