package sqlgen

import (
	"fmt"
	"strings"
)

// Dialect selects how generated keys are correlated between statements.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPortable Dialect = "portable"
)

// ValidDialects lists the accepted dialect names.
var ValidDialects = []Dialect{DialectMySQL, DialectPortable}

// ParseDialect converts a flag value into a Dialect.
func ParseDialect(s string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidDialects {
		if d == valid {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid dialect %q: must be one of %v", s, ValidDialects)
}

// beginStatement opens the script's single transaction.
func (d Dialect) beginStatement() string {
	if d == DialectPortable {
		return "BEGIN;"
	}
	return "START TRANSACTION;"
}

// Escape makes s safe inside a single-quoted SQL literal.
// Single quotes are doubled. MySQL also treats backslash as an escape
// character by default, so the mysql dialect doubles backslashes too.
func (d Dialect) Escape(s string) string {
	if d == DialectMySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return strings.ReplaceAll(s, "'", "''")
}

// Quote returns s as a single-quoted SQL literal.
func (d Dialect) Quote(s string) string {
	return "'" + d.Escape(s) + "'"
}
