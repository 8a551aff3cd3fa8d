// Package byteformat decodes the --format flag and renders byte
// counts in one of several conventions: Metric (1000 base), Binary
// (1024 base), raw Bytes, and fixed-unit variants (GB/GiB/MB/MiB).
package byteformat

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format selects a byte-rendering strategy.
type Format int

const (
	Metric Format = iota
	Binary
	Bytes
	GB
	GiB
	MB
	MiB
)

// Parse decodes the --format flag value (case-insensitive).
func Parse(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "metric":
		return Metric, nil
	case "binary":
		return Binary, nil
	case "bytes":
		return Bytes, nil
	case "gb":
		return GB, nil
	case "gib":
		return GiB, nil
	case "mb":
		return MB, nil
	case "mib":
		return MiB, nil
	default:
		return Metric, fmt.Errorf("unknown format %q (want metric|binary|bytes|gb|gib|mb|mib)", s)
	}
}

// Render formats n bytes per f.
func Render(f Format, n uint64) string {
	switch f {
	case Metric:
		// Two significant decimals, matching the fixture scenario's
		// expected "1.28 MB" for 1,275,454 bytes.
		return humanize.SIWithDigits(float64(n), 2, "B")
	case Binary:
		return humanize.IBytes(n)
	case Bytes:
		return fmt.Sprintf("%d", n)
	case GB:
		return fixedUnit(n, 1_000_000_000, "GB")
	case GiB:
		return fixedUnit(n, 1<<30, "GiB")
	case MB:
		return fixedUnit(n, 1_000_000, "MB")
	case MiB:
		return fixedUnit(n, 1<<20, "MiB")
	default:
		return humanize.SIWithDigits(float64(n), 2, "B")
	}
}

func fixedUnit(n uint64, divisor float64, suffix string) string {
	return fmt.Sprintf("%.2f %s", float64(n)/divisor, suffix)
}
