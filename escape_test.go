package ch

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEscapeParam(t *testing.T) {
	t.Parallel()
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	for name, tc := range map[string]struct {
		item any
		want string
	}{
		"nil":      {nil, "NULL"},
		"date":     {time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC), "'2025-05-21'"},
		"datetime": {time.Date(2025, 5, 21, 12, 0, 0, 0, time.UTC), "'2025-05-21 12:00:00'"},
		"string":   {"test", "'test'"},
		"list":     {[]any{1, 2, 3}, "[1, 2, 3]"},
		"uuid":     {id, "'123e4567-e89b-12d3-a456-426614174000'"},
		"quote":    {"o'brien", "'o\\'brien'"},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, EscapeParam(tc.item))
		})
	}
}

func TestSubstituteParams(t *testing.T) {
	t.Parallel()
	out, err := SubstituteParams("{a} and {a}", map[string]any{"a": "x"})
	require.NoError(t, err)
	require.Equal(t, "'x' and 'x'", out)

	out, err = SubstituteParams("{n}", map[string]any{"n": 1})
	require.NoError(t, err)
	require.Equal(t, "1", out)

	_, err = SubstituteParams("{missing}", map[string]any{})
	require.Error(t, err)
}
