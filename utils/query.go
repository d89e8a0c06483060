package utils

import "strconv"

// ParseIntOrDefault parses a query value, falling back to def when the value
// is missing, malformed, zero or negative.
func ParseIntOrDefault(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// ParseID parses a numeric record identifier from a path or query value.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
