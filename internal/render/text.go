// Package render turns a dashboard snapshot into terminal text or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/locale"
)

// topLanguages is how many languages the text view lists.
const topLanguages = 5

// Text renders dashboard snapshots for a terminal.
type Text struct {
	messages locale.Catalog
	noColor  bool
}

// NewText creates a Text renderer. When noColor is set no escape sequences
// are written, whatever the terminal supports.
func NewText(messages locale.Catalog, noColor bool) *Text {
	return &Text{messages: messages, noColor: noColor}
}

func (t *Text) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// Render writes state to w.
func (t *Text) Render(w io.Writer, state domain.DashboardState) error {
	var b strings.Builder

	switch state.Status {
	case domain.StatusIdle:
		return nil
	case domain.StatusLoading:
		t.paint(color.FgYellow).Fprintln(&b, t.messages.Loading)
	case domain.StatusNotFound, domain.StatusError:
		t.paint(color.FgRed, color.Bold).Fprintln(&b, state.Message)
	case domain.StatusLoaded:
		t.writeRepository(&b, state)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Text) writeRepository(b *strings.Builder, state domain.DashboardState) {
	repo := state.Repository
	if repo == nil {
		return
	}
	title := t.paint(color.FgCyan, color.Bold)
	label := t.paint(color.Bold)
	faint := t.paint(color.Faint)

	title.Fprintln(b, repo.FullName)
	if desc := repo.GetDescription(); desc != "" {
		fmt.Fprintln(b, desc)
	}
	faint.Fprintln(b, repo.HTMLURL)
	faint.Fprintf(b, "%s (%s)\n", repo.Owner.Login, repo.Owner.AvatarURL)
	fmt.Fprintln(b)

	// The watchers card shows subscribers; GitHub's watchers_count mirrors stars.
	cards := []struct {
		name  string
		value int
	}{
		{t.messages.Stars, repo.StargazersCount},
		{t.messages.Forks, repo.ForksCount},
		{t.messages.Watchers, repo.SubscribersCount},
	}
	for _, c := range cards {
		label.Fprintf(b, "%-10s", c.name)
		fmt.Fprintf(b, " %d\n", c.value)
	}
	fmt.Fprintln(b)

	label.Fprintln(b, t.messages.Languages)
	shares := state.Languages.Top(topLanguages)
	if len(shares) == 0 {
		faint.Fprintf(b, "  %s\n", t.messages.NoLanguageData)
	}
	for _, s := range shares {
		fmt.Fprintf(b, "  %-16s %5.1f%%\n", s.Name, s.Percent)
	}
	fmt.Fprintln(b)

	label.Fprintln(b, t.messages.CommitActivity)
	if !state.HasCommitActivity {
		faint.Fprintf(b, "  %s\n", t.messages.NoCommitActivity)
		return
	}
	for i, week := range state.CommitActivity {
		fmt.Fprintf(b, "  %s %d  %d\n", t.messages.Week, i+1, week.Total)
	}
}

// JSON writes state as indented JSON followed by a newline.
func JSON(w io.Writer, state domain.DashboardState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard state: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
