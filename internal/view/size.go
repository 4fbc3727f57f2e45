package view

import "fmt"

//nolint:gochecknoglobals // Unit table
var units = []string{"B", "kB", "MB", "GB", "TB", "PB"}

// ReadableSize formats size with decimal units and at most three significant digits.
//
// Values of 100 or more in their unit have no decimals, values from 10 to 99
// show one decimal when it is non-zero, and values below 10 show two
// decimals unless both are zero. Digits are truncated, never rounded:
// 4096 is "4.09 kB". Sizes beyond the PB range are printed in bytes.
func ReadableSize(size uint64) string {
	s, _ := readableSize(size)

	return s
}

// readableSize reports false when size overflows the unit table.
func readableSize(size uint64) (string, bool) {
	value, remainder := size, uint64(0)

	for _, unit := range units {
		if value < 1000 {
			switch {
			case value >= 100:
				return fmt.Sprintf("%d %s", value, unit), true
			case value >= 10:
				if remainder/100 == 0 {
					return fmt.Sprintf("%d %s", value, unit), true
				}

				return fmt.Sprintf("%d.%d %s", value, remainder/100, unit), true
			default:
				if remainder/10 == 0 {
					return fmt.Sprintf("%d %s", value, unit), true
				}

				return fmt.Sprintf("%d.%02d %s", value, remainder/10, unit), true
			}
		}

		remainder = value % 1000
		value /= 1000
	}

	return fmt.Sprintf("%d B", size), false
}
