package leaderboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitboard/internal/models"
)

type Item struct {
	Entry models.LeaderboardEntry
}

func (i Item) Title() string {
	title := fmt.Sprintf("%d. %s", i.Entry.Rank, i.Entry.FullName)
	if i.Entry.IsMe {
		title += " (you)"
	}
	return title
}

func (i Item) Description() string {
	return fmt.Sprintf("@%s | %d%% this month", i.Entry.Username, i.Entry.Score)
}

func (i Item) FilterValue() string { return i.Entry.FullName + " " + i.Entry.Username }

type Model struct {
	list list.Model
}

func New(entries []models.LeaderboardEntry, width, height int) Model {
	l := list.New(items(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Leaderboard"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetStatusBarItemName("friend", "friends")
	return Model{list: l}
}

func items(entries []models.LeaderboardEntry) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e}
	}
	return out
}

func (m *Model) SetEntries(entries []models.LeaderboardEntry) {
	m.list.SetItems(items(entries))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Len returns the number of ranked entries.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
