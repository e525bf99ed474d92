package compress

import (
	"fmt"

	"github.com/go-faster/city"
)

// FormatU128 renders a city.U128 as a hex pair, matching the format the
// server logs in its own checksum-mismatch diagnostics.
func FormatU128(v city.U128) string {
	return fmt.Sprintf("%x:%x", v.High, v.Low)
}

// CorruptedDataErr is returned when the recomputed CityHash128 of a
// compressed frame does not match the hash embedded in the frame header.
type CorruptedDataErr struct {
	Actual    city.U128
	Reference city.U128
	RawSize   int
	DataSize  int
}

func (c *CorruptedDataErr) Error() string {
	return fmt.Sprintf("corrupted data: %s (actual), %s (reference), compressed size: %d, data size: %d",
		FormatU128(c.Actual), FormatU128(c.Reference), c.RawSize, c.DataSize,
	)
}
