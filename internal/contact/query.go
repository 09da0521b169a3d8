package contact

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 8
)

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// ParseListQuery never fails: missing, malformed or non-positive numbers fall back to defaults.
func ParseListQuery(rawPage, rawLimit, search string) ListQuery {
	return ListQuery{
		Page:   positiveOrDefault(rawPage, DefaultPage),
		Limit:  positiveOrDefault(rawLimit, DefaultLimit),
		Search: strings.TrimSpace(search),
	}
}

func positiveOrDefault(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return def
	}
	return v
}
