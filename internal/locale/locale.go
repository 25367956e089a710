// Package locale holds the user-facing strings of the dashboard.
package locale

import "strings"

// Catalog is the set of messages and labels shown to a user.
type Catalog struct {
	Tag                string
	Loading            string
	RepositoryNotFound string
	LoadFailed         string
	NoCommitActivity   string
	Stars              string
	Forks              string
	Watchers           string
	Languages          string
	CommitActivity     string
	Week               string
	NoLanguageData     string
}

// DefaultTag is used when no locale, or an unknown one, is requested.
const DefaultTag = "en"

var catalogs = map[string]Catalog{
	"en": {
		Tag:                "en",
		Loading:            "Loading data...",
		RepositoryNotFound: "Repository not found.",
		LoadFailed:         "Failed to load data. Check your connection or the API rate limit.",
		NoCommitActivity:   "No recent commit activity.",
		Stars:              "Stars",
		Forks:              "Forks",
		Watchers:           "Watchers",
		Languages:          "Languages",
		CommitActivity:     "Commit activity (4 weeks)",
		Week:               "Week",
		NoLanguageData:     "No language data.",
	},
	"pt-BR": {
		Tag:                "pt-BR",
		Loading:            "Carregando dados...",
		RepositoryNotFound: "Repositório não encontrado.",
		LoadFailed:         "Erro ao carregar dados. Verifique sua conexão ou o limite da API.",
		NoCommitActivity:   "Sem atividade de commits recente.",
		Stars:              "Stars",
		Forks:              "Forks",
		Watchers:           "Watchers",
		Languages:          "Linguagens",
		CommitActivity:     "Atividade de Commits (4 Semanas)",
		Week:               "Semana",
		NoLanguageData:     "Sem dados de linguagens.",
	},
}

// For returns the catalog for tag. Matching is case-insensitive and accepts
// "_" in place of "-"; a bare "pt" selects pt-BR. Unknown tags fall back to English.
func For(tag string) Catalog {
	normalized := strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	for key, c := range catalogs {
		if strings.EqualFold(key, normalized) {
			return c
		}
	}
	if strings.EqualFold(normalized, "pt") {
		return catalogs["pt-BR"]
	}
	return catalogs[DefaultTag]
}

// Supported reports whether tag names a catalog without falling back.
func Supported(tag string) bool {
	return For(tag).Tag != DefaultTag || strings.EqualFold(strings.TrimSpace(tag), DefaultTag)
}
