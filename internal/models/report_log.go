package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLog records that a receipt or report was exported or printed.
// It is an audit trail only; the upstream API stays the system of record.
type ReportLog struct {
	ID         int64           `json:"id" db:"id"`
	Kind       string          `json:"kind" db:"kind"`
	Format     string          `json:"format" db:"format"`
	Reference  string          `json:"reference" db:"reference"`
	UserName   string          `json:"user_name" db:"user_name"`
	LineCount  int             `json:"line_count" db:"line_count"`
	GrandTotal decimal.Decimal `json:"grand_total" db:"grand_total"`
	ArchiveKey *string         `json:"archive_key,omitempty" db:"archive_key"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
