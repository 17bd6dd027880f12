package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cl "lifeverse/internal/cli"
	"lifeverse/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	moneyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

type tuiModel struct {
	sess   *cl.Session
	bars   progress.Model
	view   game.StateView
	notes  []game.Entry
	status string
	width  int
}

func runTUI(ctx context.Context, sess *cl.Session) error {
	m := tuiModel{
		sess: sess,
		bars: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.bars.Width = 24
	m.refresh()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m *tuiModel) refresh() {
	m.view = m.sess.Game.Snapshot()
	m.notes = m.sess.Game.Notifications(game.DefaultRecent)
}

func (m tuiModel) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.sess.Game.RunTick(cfg.TickMinutes)
		m.refresh()
		return m, tickEvery()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.act(m.sess.Game.Work)
		case "s":
			m.act(m.sess.Game.Study)
		case "z":
			m.act(m.sess.Game.Socialize)
		case "r":
			m.act(m.sess.Game.Rest)
		case "g":
			m.act(m.sess.Game.Gym)
		case "b":
			m.act(m.sess.Game.ClaimDailyBonus)
		case "0", "1", "2", "3":
			choice := int(msg.String()[0] - '0')
			m.act(func() (string, error) {
				return m.sess.Game.ResolveEvent(choice)
			})
		}
		return m, nil
	}
	return m, nil
}

// act runs one action and surfaces its outcome in the status line; the
// rejection message is already in the notification log on failure.
func (m *tuiModel) act(fn func() (string, error)) {
	msg, err := fn()
	if err != nil {
		if notes := m.sess.Game.Notifications(1); len(notes) > 0 {
			m.status = notes[0].Message
		} else {
			m.status = err.Error()
		}
	} else {
		m.status = msg
	}
	m.refresh()
}

func (m tuiModel) View() string {
	v := m.view

	header := titleStyle.Render(fmt.Sprintf(" LIFEVERSE  Year %d  Month %d  Day %d  %02d:%02d ",
		v.Clock.Year, v.Clock.Month, v.Clock.Day, v.Clock.Hour, v.Clock.Minute))

	var stats strings.Builder
	for _, row := range []struct {
		label string
		value int
	}{
		{"Health", v.Stats.Health},
		{"Energy", v.Stats.Energy},
		{"Happiness", v.Stats.Happiness},
		{"Intelligence", v.Stats.Intelligence},
		{"Reputation", v.Stats.Reputation},
	} {
		stats.WriteString(labelStyle.Render(row.label))
		stats.WriteString(m.bars.ViewAs(float64(row.value) / 100))
		stats.WriteString(fmt.Sprintf(" %3d\n", row.value))
	}

	var money strings.Builder
	money.WriteString(labelStyle.Render("Cash") + moneyStyle.Render("$"+comma(v.Ledger.Cash)) + "\n")
	money.WriteString(labelStyle.Render("Bank") + moneyStyle.Render("$"+comma(v.Ledger.BankBalance)) + "\n")
	if v.Ledger.LoanBalance > 0 {
		money.WriteString(labelStyle.Render("Loan") + dangerStyle.Render("$"+comma(v.Ledger.LoanBalance)) + "\n")
	}
	money.WriteString(labelStyle.Render("Net Worth") + moneyStyle.Render("$"+comma(v.NetWorth)) + "\n")
	job := v.Job
	if job == "" {
		job = "unemployed"
	}
	money.WriteString(labelStyle.Render("Job") + job + "\n")
	money.WriteString(labelStyle.Render("Age") + fmt.Sprintf("%d", v.Stats.Age))
	if v.JailDays > 0 {
		money.WriteString("\n" + dangerStyle.Render(fmt.Sprintf("IN JAIL: %d days left", v.JailDays)))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(strings.TrimRight(stats.String(), "\n")),
		panelStyle.Render(money.String()),
	)

	var feed strings.Builder
	for _, e := range m.notes {
		feed.WriteString("• " + e.Message + "\n")
	}
	if feed.Len() == 0 {
		feed.WriteString("Nothing has happened yet.")
	}

	var eventPanel string
	if ev := v.PendingEvent; ev != nil {
		var b strings.Builder
		b.WriteString(eventStyle.Render(ev.Title) + "\n")
		b.WriteString(ev.Description + "\n")
		for i, c := range ev.Choices {
			b.WriteString(fmt.Sprintf("  [%d] %s\n", i, c))
		}
		eventPanel = panelStyle.BorderForeground(lipgloss.Color("221")).
			Render(strings.TrimRight(b.String(), "\n")) + "\n"
	}

	status := ""
	if m.status != "" {
		status = m.status + "\n"
	}

	help := helpStyle.Render("w work  s study  z socialize  r rest  g gym  b bonus  0-3 choose  q quit")

	return header + "\n" +
		panels + "\n" +
		eventPanel +
		panelStyle.Render(strings.TrimRight(feed.String(), "\n")) + "\n" +
		status +
		help + "\n"
}
