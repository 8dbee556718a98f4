// Package validation gates everything that reaches the processing core:
// upload files, table structure, and recipient email addresses. All checks
// return value errors built on the domain sentinels so callers can report
// them without aborting the session.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"datasuite/domain/core"
	"datasuite/domain/table"
)

// DefaultMaxFileSizeMB caps upload size.
const DefaultMaxFileSizeMB = 50

// supportedExtensions lists accepted upload formats.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// emailPattern is the RFC-5322-ish local@domain.tld check used for
// recipient addresses.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateFile checks the upload's extension and size before any parsing
// happens. maxSizeMB <= 0 falls back to DefaultMaxFileSizeMB.
func ValidateFile(path string, maxSizeMB int64) error {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxFileSizeMB
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return core.NewValidationError(core.ErrUnsupportedFormat, fmt.Sprintf("%s (use CSV or Excel files)", ext))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat file %s: %w", path, err)
	}
	sizeMB := float64(info.Size()) / (1024 * 1024)
	if info.Size() > maxSizeMB*1024*1024 {
		return core.NewValidationError(core.ErrFileTooLarge, fmt.Sprintf("%.1fMB exceeds the %dMB limit", sizeMB, maxSizeMB))
	}

	return nil
}

// ValidateTable checks the structural contract the core assumes: a
// non-empty table with at least 2 columns and at least 1 row.
func ValidateTable(t table.RawTable) error {
	if t.NumColumns() == 0 {
		return core.ErrEmptyTable
	}
	if t.NumColumns() < 2 {
		return core.ErrTooFewColumns
	}
	if t.NumRows() < 1 {
		return core.ErrNoRows
	}
	return nil
}

// ValidateEmail reports whether a single address passes the recipient
// pattern.
func ValidateEmail(address string) bool {
	return emailPattern.MatchString(strings.TrimSpace(address))
}

// ParseRecipients validates a comma-separated recipient list and returns
// the cleaned addresses: trimmed, order-preserving, deduplicated
// case-insensitively. Any invalid address fails the whole list so a typo
// never silently drops a stakeholder.
func ParseRecipients(raw string) ([]string, error) {
	var recipients []string
	seen := make(map[string]bool)
	var invalid []string

	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if !ValidateEmail(addr) {
			invalid = append(invalid, addr)
			continue
		}
		key := strings.ToLower(addr)
		if seen[key] {
			continue
		}
		seen[key] = true
		recipients = append(recipients, addr)
	}

	if len(invalid) > 0 {
		return nil, core.NewValidationError(core.ErrInvalidRecipient, strings.Join(invalid, ", "))
	}
	if len(recipients) == 0 {
		return nil, core.ErrNoRecipients
	}

	return recipients, nil
}
