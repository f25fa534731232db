package model

import "fmt"

// Folio series prefixes. Sales and cash cuts number independently.
const (
	SaleFolioPrefix    = "FA"
	CashCutFolioPrefix = "CC"
)

// FormatFolio renders a sequence value as a display folio ("FA-000001").
// The underlying counter is a Postgres sequence; this is presentation only.
func FormatFolio(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}
