package ch

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var escapeReplacer = strings.NewReplacer(
	"\b", `\b`,
	"\f", `\f`,
	"\r", `\r`,
	"\n", `\n`,
	"\t", `\t`,
	"\x00", `\0`,
	"\a", `\a`,
	"\v", `\v`,
	`\`, `\\`,
	`'`, `\'`,
)

// EscapeString escapes s for inclusion in a single-quoted SQL string
// literal, without adding the surrounding quotes.
func EscapeString(s string) string {
	return escapeReplacer.Replace(s)
}

// EscapeParam renders v as a SQL literal suitable for substitution into a
// query template. Supported types: nil, string, time.Time (formatted as a
// date if it is exactly midnight in its own location, else as a datetime),
// uuid.UUID, fmt.Stringer (e.g. enum values), []any (SQL array literal),
// and the built-in numeric/bool types via fmt.Sprint.
func EscapeParam(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + EscapeString(x) + "'"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return "'" + x.Format("2006-01-02") + "'"
		}
		return "'" + x.Format("2006-01-02 15:04:05") + "'"
	case uuid.UUID:
		return "'" + x.String() + "'"
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = EscapeParam(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case fmt.Stringer:
		return EscapeParam(x.String())
	default:
		return fmt.Sprint(x)
	}
}

// SubstituteParams renders a query template whose placeholders are {name}
// markers named after the params keys, e.g. "SELECT * FROM t WHERE
// id = {id}", by replacing each {name} with EscapeParam(params[name]).
//
// Unlike Python str.format, missing keys are a hard error rather than a
// silently-left placeholder, since a malformed query should fail fast
// instead of reaching the server.
func SubstituteParams(query string, params map[string]any) (string, error) {
	var b strings.Builder
	rest := query
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", errors.New("unterminated placeholder in query")
		}
		end += start
		b.WriteString(rest[:start])
		name := rest[start+1 : end]
		value, ok := params[name]
		if !ok {
			return "", errors.Errorf("parameter %q not found", name)
		}
		b.WriteString(EscapeParam(value))
		rest = rest[end+1:]
	}
	return b.String(), nil
}
