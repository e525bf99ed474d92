package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTripLowCardinality(t *testing.T, data ColInput, rows int, decode func() ColInput) ColInput {
	t.Helper()

	var buf Buffer
	data.EncodeColumn(&buf)

	dst := decode()
	r := NewReader(bytes.NewReader(buf.Buf))
	require.NoError(t, dst.DecodeColumn(r, rows))
	return dst
}

func TestColLowCardinality_roundTrip(t *testing.T) {
	t.Parallel()

	src := NewLowCardinality[string](new(ColStr))
	for _, v := range []string{"a", "b", "a", "a", "c"} {
		src.Append(v)
	}
	require.Equal(t, 3, src.Data.Rows())

	dst := roundTripLowCardinality(t, src, src.Rows(), func() ColInput {
		return NewLowCardinality[string](new(ColStr))
	}).(*ColLowCardinality[string])

	require.Equal(t, src.Rows(), dst.Rows())
	for i := 0; i < src.Rows(); i++ {
		require.Equal(t, src.Row(i), dst.Row(i))
	}
}

// TestColLowCardinalityNullable_roundTrip covers end-to-end scenario 3:
// LowCardinality(Nullable(String)) over ["a", None, "a", "b"] must round-trip
// with a 3-entry dictionary (NULL, "a", "b"), NULL folded into slot 0 rather
// than carried as a separate null mask.
func TestColLowCardinalityNullable_roundTrip(t *testing.T) {
	t.Parallel()

	src := NewLowCardinalityNullable[string](new(ColStr))
	src.Append("a")
	src.AppendNull()
	src.Append("a")
	src.Append("b")

	require.Equal(t, 3, src.Data.Rows(), "dictionary should be NULL, a, b")
	require.True(t, src.IsNull(1))
	require.False(t, src.IsNull(0))
	require.Equal(t, uint64(0), src.keys[1])

	dst := roundTripLowCardinality(t, src, src.Rows(), func() ColInput {
		return NewLowCardinalityNullable[string](new(ColStr))
	}).(*ColLowCardinalityNullable[string])

	require.Equal(t, src.Rows(), dst.Rows())
	require.Equal(t, 3, dst.Data.Rows())
	for i := 0; i < src.Rows(); i++ {
		require.Equal(t, src.IsNull(i), dst.IsNull(i), "[%d]", i)
		if !src.IsNull(i) {
			require.Equal(t, src.Row(i), dst.Row(i), "[%d]", i)
		}
	}
}

func TestNewColumn_lowCardinalityNullable(t *testing.T) {
	t.Parallel()

	col, err := NewColumn("LowCardinality(Nullable(String))")
	require.NoError(t, err)
	lc, ok := col.(*ColLowCardinalityNullable[string])
	require.True(t, ok, "expected *ColLowCardinalityNullable[string], got %T", col)

	lc.Append("a")
	lc.AppendNull()
	lc.Append("a")
	lc.Append("b")
	require.Equal(t, 3, lc.Data.Rows())
}
