package domain

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// LanguageShare is one language's slice of a repository's code.
type LanguageShare struct {
	Name    string  `json:"name"`
	Bytes   int     `json:"bytes"`
	Percent float64 `json:"percent"`
}

// Total returns the number of bytes across all languages.
func (m LanguageMix) Total() int {
	if len(m) == 0 {
		return 0
	}
	values := make(stats.Float64Data, 0, len(m))
	for _, b := range m {
		values = append(values, float64(b))
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return int(sum)
}

// Top returns the n largest languages by bytes, ties broken by name.
// Percent is relative to the whole mix and rounded to one decimal place.
// A non-positive n returns every language.
func (m LanguageMix) Top(n int) []LanguageShare {
	total := m.Total()

	shares := make([]LanguageShare, 0, len(m))
	for name, b := range m {
		share := LanguageShare{Name: name, Bytes: b}
		if total > 0 {
			pct, err := stats.Round(float64(b)/float64(total)*100, 1)
			if err == nil {
				share.Percent = pct
			}
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})

	if n > 0 && len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// HasCommitActivity reports whether any commits were made across the given weeks.
func HasCommitActivity(weeks []WeeklyCommitActivity) bool {
	if len(weeks) == 0 {
		return false
	}
	totals := make(stats.Float64Data, len(weeks))
	for i, w := range weeks {
		totals[i] = float64(w.Total)
	}
	sum, err := stats.Sum(totals)
	if err != nil {
		return false
	}
	return sum > 0
}
