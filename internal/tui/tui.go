// Package tui is the interactive toy board.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/toyboard/internal/board"
	"github.com/idilsaglam/toyboard/internal/model"
)

// Responses of the three requests. Each is applied in Update, in the order
// Bubble Tea delivers them.
type (
	toysLoadedMsg struct {
		toys []model.Toy
		err  error
	}
	toyCreatedMsg struct {
		toy model.Toy
		err error
	}
	toyLikedMsg struct {
		id  model.ID
		toy model.Toy
		err error
	}
)

// alertQueue collects alerts raised by the controller. The oldest one is
// shown and blocks all other input until dismissed.
type alertQueue struct {
	msgs []string
}

func (q *alertQueue) Alert(msg string) { q.msgs = append(q.msgs, msg) }

func (q *alertQueue) current() (string, bool) {
	if len(q.msgs) == 0 {
		return "", false
	}
	return q.msgs[0], true
}

func (q *alertQueue) dismiss() {
	if len(q.msgs) > 0 {
		q.msgs = q.msgs[1:]
	}
}

const (
	fieldName = iota
	fieldImage
)

// Model is the Bubble Tea model of the board.
type Model struct {
	ctx    context.Context
	ctrl   *board.Controller
	alerts *alertQueue

	cursor   int
	inFlight int

	name, image textinput.Model
	field       int

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New builds the board model. Requests run with ctx.
func New(ctx context.Context, svc board.ToyService, log *slog.Logger) Model {
	alerts := &alertQueue{}

	name := textinput.New()
	name.Prompt = "Name  > "
	name.Placeholder = "Enter a toy's name..."
	name.CharLimit = 200

	image := textinput.New()
	image.Prompt = "Image > "
	image.Placeholder = "Enter a toy's image URL..."
	image.CharLimit = 2000

	return Model{
		ctx:      ctx,
		ctrl:     board.NewController(svc, board.New(), alerts, log),
		alerts:   alerts,
		inFlight: 1, // the initial load issued by Init
		name:     name,
		image:    image,
		keys:     defaultKeys(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
}

// Run starts the board and blocks until the user quits.
func Run(ctx context.Context, svc board.ToyService, log *slog.Logger) error {
	p := tea.NewProgram(New(ctx, svc, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Board exposes the state behind the view.
func (m Model) Board() *board.Board { return m.ctrl.Board() }

// Alert returns the alert currently blocking input, if any.
func (m Model) Alert() (string, bool) { return m.alerts.current() }

func (m Model) Init() tea.Cmd { return m.listCmd() }

func (m *Model) load() tea.Cmd {
	m.inFlight++
	return m.listCmd()
}

func (m Model) listCmd() tea.Cmd {
	svc, ctx := m.ctrl.Service(), m.ctx
	return func() tea.Msg {
		toys, err := svc.List(ctx)
		return toysLoadedMsg{toys: toys, err: err}
	}
}

func (m *Model) create(nt model.NewToy) tea.Cmd {
	m.inFlight++
	svc, ctx := m.ctrl.Service(), m.ctx
	return func() tea.Msg {
		toy, err := svc.Create(ctx, nt)
		return toyCreatedMsg{toy: toy, err: err}
	}
}

func (m *Model) like(id model.ID) tea.Cmd {
	m.inFlight++
	proposal := m.ctrl.PrepareLike(id)
	svc, ctx := m.ctrl.Service(), m.ctx
	return func() tea.Msg {
		toy, err := svc.Like(ctx, id, proposal)
		return toyLikedMsg{id: id, toy: toy, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case toysLoadedMsg:
		m.done()
		if m.ctrl.ApplyList(msg.toys, msg.err) == nil {
			m.clampCursor()
		}
		return m, nil

	case toyCreatedMsg:
		m.done()
		if m.ctrl.ApplyCreate(msg.toy, msg.err) == nil {
			m.resetForm()
		}
		return m, nil

	case toyLikedMsg:
		m.done()
		_ = m.ctrl.ApplyLike(msg.id, msg.toy, msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if _, blocked := m.alerts.current(); blocked {
			if key.Matches(msg, m.keys.Dismiss) {
				m.alerts.dismiss()
			}
			return m, nil
		}
		if m.Board().FormOpen() {
			return m.updateForm(msg)
		}
		return m.updateBoard(msg)
	}

	if m.Board().FormOpen() {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.load()
		return m, cmd
	case key.Matches(msg, m.keys.NewToy):
		m.ctrl.ToggleForm()
		m.field = fieldName
		m.image.Blur()
		cmd := m.name.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Like):
		cards := m.Board().Cards()
		if m.cursor >= 0 && m.cursor < len(cards) {
			cmd := m.like(cards[m.cursor].ID)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.ToggleForm()
		m.name.Blur()
		m.image.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		nt, err := m.ctrl.PrepareCreate(m.name.Value(), m.image.Value())
		if err != nil {
			return m, nil
		}
		cmd := m.create(nt)
		return m, cmd
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		cmd := m.switchField()
		return m, cmd
	}
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.field == fieldName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.image, cmd = m.image.Update(msg)
	}
	return m, cmd
}

func (m *Model) done() {
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m *Model) switchField() tea.Cmd {
	if m.field == fieldName {
		m.field = fieldImage
		m.name.Blur()
		return m.image.Focus()
	}
	m.field = fieldName
	m.image.Blur()
	return m.name.Focus()
}

func (m *Model) resetForm() {
	m.name.SetValue("")
	m.image.SetValue("")
	m.name.Blur()
	m.image.Blur()
	m.field = fieldName
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.Board().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) columns() int {
	cols := (m.width - 4) / (cardWidth + 4)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m Model) View() string {
	if msg, ok := m.alerts.current(); ok {
		box := alertStyle.Render(errorStyle.Render(msg) + "\n\n" + mutedStyle.Render("press enter"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var sections []string
	sections = append(sections, m.header())
	if m.Board().FormOpen() {
		sections = append(sections, m.formView())
	}
	sections = append(sections, m.cardsView())
	if m.Board().FormOpen() {
		sections = append(sections, m.help.View(formKeys(m.keys)))
	} else {
		sections = append(sections, m.help.View(boardKeys(m.keys)))
	}
	return panelStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) header() string {
	cards := m.Board().Cards()
	total := 0
	for _, c := range cards {
		total += c.Likes
	}
	h := fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("Andy's Toys"),
		accentStyle.Render("Toys"), len(cards),
		likesStyle.Render(heart), total,
	)
	if m.inFlight > 0 {
		h += "  " + pendingStyle.Render("• loading")
	}
	return h
}

func (m Model) formView() string {
	return formStyle.Render(titleStyle.Render("Create a toy!") + "\n" + m.name.View() + "\n" + m.image.View())
}

func (m Model) cardsView() string {
	cards := m.Board().Cards()
	if len(cards) == 0 {
		return mutedStyle.Render("no toys yet, press a to add one")
	}
	cols := m.columns()
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, renderCard(cards[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c board.Card, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	inner := cardWidth - 2
	body := strings.Join([]string{
		titleStyle.Render(truncate(c.Name, inner)),
		mutedStyle.Render(truncate(c.Image, inner)),
		likesStyle.Render(c.LikesLabel()),
		likeButtonStyle.Render("Like " + heart),
	}, "\n")
	return style.Render(body)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
