package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tstris/internal/core"
	"github.com/vovakirdan/tstris/internal/registry"
	"github.com/vovakirdan/tstris/internal/storage"
)

const (
	scoreLimit       = 100
	statsPanelWidth  = 24
	minWidthForStats = 94 // table plus stats panel
	scoreChrome      = 9  // title, variant tabs, borders, table header and help
)

var scoreColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Player", Width: 14},
	{Title: "Score", Width: 9},
	{Title: "Lines", Width: 6},
	{Title: "Lvl", Width: 4},
	{Title: "Date", Width: 12},
}

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scorePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	variantTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeVariantStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	scoreDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap binds the scoreboard keys. Scrolling is handled by the
// table's own bindings; Up and Down only feed the help bar.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextVariant, k.PrevVariant, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextVariant, k.PrevVariant}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextVariant: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
		PrevVariant: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("⇧tab/←", "prev variant")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best games of each variant with a summary of
// everything played on it.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.GameInfo
	current  int

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	err    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the first registered variant.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = newScoreTable(m.tableHeight())
	m.selectVariant(0)
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns(append([]table.Column(nil), scoreColumns...)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) tableHeight() int {
	return core.Max(m.height-scoreChrome, 3)
}

func (m ScoreboardModel) withStats() bool {
	return m.width >= minWidthForStats
}

// selectVariant switches to variant i, wrapping at both ends.
func (m *ScoreboardModel) selectVariant(i int) {
	if n := len(m.variants); n > 0 {
		m.current = (i%n + n) % n
	}
	m.load()
}

// load reads the top scores and stats of the current variant.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.current].ID
		m.scores, m.err = m.store.TopScores(id, scoreLimit)
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(id)
		}
	}
	m.table.SetRows(scoreRows(m.scores))
	m.table.GotoTop()
}

func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			player,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Level),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Variant returns the ID of the variant on screen.
func (m ScoreboardModel) Variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextVariant):
			m.selectVariant(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevVariant):
			m.selectVariant(m.current - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(m.tableHeight())
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := scorePanelStyle.Render(m.tableView())
	if m.withStats() {
		stats := scorePanelStyle.Width(statsPanelWidth).Render(m.statsView())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", stats)
	}

	var b strings.Builder
	b.WriteString(centerStyled(scoreTitleStyle, "HIGH SCORES", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.variantTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(scoreDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) variantTabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = activeVariantStyle.Render(v.Title)
		} else {
			tabs[i] = variantTabStyle.Render(v.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.err != nil:
		return scoreDimStyle.Render("Could not read scores: " + m.err.Error())
	case len(m.scores) == 0:
		return scoreDimStyle.Italic(true).Padding(1, 2).
			Render("No scores recorded yet.\nFinish a game to set a high score!")
	}
	if m.withStats() || m.stats == nil {
		return m.table.View()
	}
	// Narrow screens get the stats as one line above the table
	summary := fmt.Sprintf("%d games · best %d · %d lines",
		m.stats.GamesCount, m.stats.HighScore, m.stats.TotalLines)
	return scoreDimStyle.Render(summary) + "\n\n" + m.table.View()
}

func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return scoreDimStyle.Render("No games yet")
	}
	s := m.stats
	rows := [][2]string{
		{"Best", strconv.Itoa(s.HighScore)},
		{"Games", strconv.Itoa(s.GamesCount)},
		{"Average", fmt.Sprintf("%.0f", s.AvgScore)},
		{"Lines", strconv.FormatInt(s.TotalLines, 10)},
		{"Top level", strconv.Itoa(s.BestLevel)},
	}
	if !s.LastPlayed.IsZero() {
		rows = append(rows, [2]string{"Last", s.LastPlayed.Format("Jan 02")})
	}

	valueW := statsPanelWidth - 4 - 10
	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render("Stats"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%-10s%*s", r[0], valueW, r[1])
	}
	return b.String()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard shows the scoreboard full screen. It reports true when the
// user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
