package models

import "time"

// SchemaVersion is written into every persisted portfolio envelope. Loads
// that find a different version fall back to a fresh default portfolio
// instead of guessing at migration.
const SchemaVersion = 1

// PortfolioEnvelope is the durable representation of an account: the whole
// portfolio as one JSON-serializable blob under a fixed account key.
type PortfolioEnvelope struct {
	SchemaVersion int        `json:"schema_version"`
	AccountID     string     `json:"account_id"`
	Portfolio     *Portfolio `json:"portfolio"`
	SavedAt       time.Time  `json:"saved_at"`
}
