package entity

import "strings"

// PropertyQuery is the normalized form of the public listing filters.
// Empty fields impose no constraint.
type PropertyQuery struct {
	City     string
	Statuses []string
	Types    []string
}

// NewPropertyQuery normalizes raw query-string values. status and type are
// comma separated; type values use "_" in place of spaces ("Ready_to_Move").
func NewPropertyQuery(city, status, propertyType string) PropertyQuery {
	return PropertyQuery{
		City:     strings.TrimSpace(city),
		Statuses: splitFilterValues(status, false),
		Types:    splitFilterValues(propertyType, true),
	}
}

func (q PropertyQuery) IsZero() bool {
	return q.City == "" && len(q.Statuses) == 0 && len(q.Types) == 0
}

// CacheKeyParams flattens the query for cache key derivation.
func (q PropertyQuery) CacheKeyParams() map[string]string {
	return map[string]string{
		"city":   strings.ToLower(q.City),
		"status": strings.ToLower(strings.Join(q.Statuses, ",")),
		"type":   strings.ToLower(strings.Join(q.Types, ",")),
	}
}

func splitFilterValues(raw string, underscoreToSpace bool) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if underscoreToSpace {
			part = strings.ReplaceAll(part, "_", " ")
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
