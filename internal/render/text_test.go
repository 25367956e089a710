package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/locale"
)

func loadedState() domain.DashboardState {
	desc := "The library for web and native user interfaces."
	return domain.DashboardState{
		Sequence: 1,
		Status:   domain.StatusLoaded,
		Repository: &domain.Repository{
			ID:               10270250,
			Name:             "react",
			FullName:         "facebook/react",
			Description:      &desc,
			StargazersCount:  230000,
			ForksCount:       47000,
			WatchersCount:    230000,
			SubscribersCount: 6600,
			HTMLURL:          "https://github.com/facebook/react",
			Owner:            domain.Owner{Login: "facebook", AvatarURL: "https://avatars.githubusercontent.com/u/69631?v=4"},
		},
		Languages: domain.LanguageMix{
			"JavaScript": 7000,
			"TypeScript": 1500,
			"HTML":       800,
			"CSS":        400,
			"C++":        200,
			"Shell":      100,
		},
		CommitActivity: []domain.WeeklyCommitActivity{
			{Week: 1, Total: 3}, {Week: 2, Total: 0}, {Week: 3, Total: 5}, {Week: 4, Total: 6},
		},
		HasCommitActivity: true,
	}
}

func TestText_RenderLoaded(t *testing.T) {
	var buf bytes.Buffer
	err := NewText(locale.For("en"), true).Render(&buf, loadedState())
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "facebook/react\n")
	assert.Contains(t, out, "The library for web and native user interfaces.\n")
	assert.Contains(t, out, "https://github.com/facebook/react\n")
	assert.Contains(t, out, "Stars      230000\n")
	assert.Contains(t, out, "Forks      47000\n")
	assert.Contains(t, out, "Watchers   6600\n")
	assert.Contains(t, out, "  JavaScript        70.0%\n")
	assert.Contains(t, out, "  C++                2.0%\n")
	assert.NotContains(t, out, "Shell")
	assert.Contains(t, out, "  Week 1  3\n")
	assert.Contains(t, out, "  Week 4  6\n")
	assert.NotContains(t, out, "No recent commit activity.")
}

func TestText_RenderPlaceholders(t *testing.T) {
	state := loadedState()
	state.Repository.Description = nil
	state.Languages = domain.LanguageMix{}
	state.CommitActivity = []domain.WeeklyCommitActivity{{Week: 1, Total: 0}}
	state.HasCommitActivity = false

	var buf bytes.Buffer
	err := NewText(locale.For("pt-BR"), true).Render(&buf, state)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Sem dados de linguagens.")
	assert.Contains(t, out, "Sem atividade de commits recente.")
	assert.NotContains(t, out, "Semana 1")
}

func TestText_RenderStatuses(t *testing.T) {
	en := locale.For("en")
	testCases := []struct {
		name     string
		state    domain.DashboardState
		expected string
	}{
		{
			name:     "idle writes nothing",
			state:    domain.DashboardState{Status: domain.StatusIdle},
			expected: "",
		},
		{
			name:     "loading",
			state:    domain.DashboardState{Status: domain.StatusLoading},
			expected: en.Loading + "\n",
		},
		{
			name:     "not found",
			state:    domain.DashboardState{Status: domain.StatusNotFound, Message: en.RepositoryNotFound},
			expected: en.RepositoryNotFound + "\n",
		},
		{
			name:     "error",
			state:    domain.DashboardState{Status: domain.StatusError, Message: en.LoadFailed},
			expected: en.LoadFailed + "\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewText(en, true).Render(&buf, tc.state))
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, loadedState()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "loaded", decoded["status"])
	assert.Equal(t, true, decoded["has_commit_activity"])
	repo := decoded["repository"].(map[string]any)
	assert.Equal(t, "facebook/react", repo["full_name"])
	assert.Equal(t, float64(6600), repo["subscribers_count"])
	assert.Contains(t, buf.String(), "\n  \"sequence\": 1,")
}
