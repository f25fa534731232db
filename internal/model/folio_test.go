package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFolio(t *testing.T) {
	assert.Equal(t, "FA-000001", FormatFolio(SaleFolioPrefix, 1))
	assert.Equal(t, "CC-000042", FormatFolio(CashCutFolioPrefix, 42))
	// Past six digits the folio grows instead of truncating
	assert.Equal(t, "FA-1000000", FormatFolio(SaleFolioPrefix, 1000000))
}
