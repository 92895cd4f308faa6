// Package present filters and re-sorts ranked opportunities for display.
package present

import (
	"sort"
	"strconv"
	"strings"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// SortKey selects the display order.
type SortKey string

const (
	SortBestMatch     SortKey = "best-match"
	SortDeadlineSoon  SortKey = "deadline-soon"
	SortRecentlyAdded SortKey = "recently-added"
	SortHighestSalary SortKey = "highest-salary"
)

// ParseSortKey maps "" to SortBestMatch and rejects unknown keys.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case "":
		return SortBestMatch, nil
	case SortBestMatch, SortDeadlineSoon, SortRecentlyAdded, SortHighestSalary:
		return k, nil
	}
	return "", domain.Validation("Unknown sort order " + strconv.Quote(s))
}

// Options are the user's display choices.
type Options struct {
	Query string
	Type  string
	Sort  SortKey
}

// ParseOptions validates raw query, type and sort values.
func ParseOptions(query, typ, sortKey string) (Options, error) {
	key, err := ParseSortKey(sortKey)
	if err != nil {
		return Options{}, err
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		typ = TypeAll
	}
	if typ != TypeAll && !domain.IsOpportunityType(typ) {
		return Options{}, domain.Validation("Unknown opportunity type " + strconv.Quote(typ))
	}
	return Options{Query: query, Type: typ, Sort: key}, nil
}

// Apply filters by query (case-insensitive substring of title or
// organization), then by type, then sorts. The input is never modified.
func Apply(in []domain.AnnotatedOpportunity, opts Options) []domain.AnnotatedOpportunity {
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	out := make([]domain.AnnotatedOpportunity, 0, len(in))
	for _, a := range in {
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Organization), q) {
			continue
		}
		if opts.Type != "" && opts.Type != TypeAll && a.Type != opts.Type {
			continue
		}
		out = append(out, a)
	}

	switch opts.Sort {
	case SortBestMatch, "":
		sort.SliceStable(out, func(i, j int) bool { return out[i].MatchPercentage > out[j].MatchPercentage })
	case SortDeadlineSoon:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	case SortRecentlyAdded:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	case SortHighestSalary:
		sort.SliceStable(out, func(i, j int) bool { return ParseSalary(out[i].Salary) > ParseSalary(out[j].Salary) })
	}
	return out
}

// ParseSalary keeps only the digits of s, so "$8,000/month" is 8000.
// Missing or digit-free salaries are 0.
func ParseSalary(s string) int64 {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Summary holds the dashboard counters.
type Summary struct {
	Total       int `json:"totalMatches"`
	HighMatches int `json:"highMatches"`
	Open        int `json:"openApplications"`
}

func Summarize(in []domain.AnnotatedOpportunity) Summary {
	s := Summary{Total: len(in)}
	for _, a := range in {
		if a.MatchPercentage >= domain.HighMatchThreshold {
			s.HighMatches++
		}
		if a.Status == domain.StatusOpen {
			s.Open++
		}
	}
	return s
}
