package utils

import (
	"strconv"
	"strings"
)

// ParseIDList splits a comma separated query value like "1,5,12" into ids,
// silently skipping anything that is not a positive integer.
func ParseIDList(raw string) []uint {
	var ids []uint

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}

		ids = append(ids, uint(id))
	}

	return ids
}
