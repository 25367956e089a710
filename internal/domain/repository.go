// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Owner is the account a repository belongs to.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository is one resolved GitHub repository.
// It is built once from an upstream response and never mutated afterwards.
type Repository struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	FullName         string  `json:"full_name"`
	Description      *string `json:"description"`
	StargazersCount  int     `json:"stargazers_count"`
	ForksCount       int     `json:"forks_count"`
	WatchersCount    int     `json:"watchers_count"`
	SubscribersCount int     `json:"subscribers_count"`
	Language         string  `json:"language"`
	HTMLURL          string  `json:"html_url"`
	Owner            Owner   `json:"owner"`
}

// GetDescription returns the description, or "" when the repository has none.
func (r *Repository) GetDescription() string {
	if r == nil || r.Description == nil {
		return ""
	}
	return *r.Description
}

// LanguageMix maps a language name to the number of bytes written in it.
// An empty mix means "no language data" and is not an error.
type LanguageMix map[string]int

// WeeklyCommitActivity is the commit total for one week.
// Week is the unix timestamp of the week start, as GitHub reports it.
type WeeklyCommitActivity struct {
	Week  int64 `json:"week"`
	Total int   `json:"total"`
}

// Start returns the week start as a time.Time in UTC.
func (w WeeklyCommitActivity) Start() time.Time {
	return time.Unix(w.Week, 0).UTC()
}
