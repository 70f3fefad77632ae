package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingSortsAndSkips(t *testing.T) {
	names := []string{
		"002_report_archive.sql",
		"README.md",
		"001_report_logs.sql",
		"000_reset_all.sql",
		"003_indexes.sql",
	}
	applied := map[string]bool{"001_report_logs.sql": true}

	assert.Equal(t, []string{"002_report_archive.sql", "003_indexes.sql"}, Pending(names, applied))
	assert.Empty(t, Pending(nil, nil))
}
