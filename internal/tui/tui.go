// Package tui is the terminal front end. It renders the mirror and sends every
// change through it; the model only holds what is on screen.
package tui

import (
	"context"
	"fmt"
	"listo/internal/mirror"
	"listo/internal/view"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

type focus int

const (
	focusLists focus = iota
	focusItems
)

type mode int

const (
	modeBrowse mode = iota
	modeAddItem
	modeEditItem
	modeNewList
	modeRenameList
	modeConfirmDeleteList
)

type (
	loadedMsg    struct{ err error }
	doneMsg      struct{ err error }
	listAddedMsg struct{ slug string }
	changedMsg   struct{}
	alertMsg     string
	tickMsg      time.Time
)

// Alerts carries mirror alerts to the running program.
type Alerts chan string

func NewAlerts() Alerts {
	return make(Alerts, 16)
}

// Send never blocks. Alerts past the buffer are logged and dropped.
func (a Alerts) Send(message string) {
	select {
	case a <- message:
	default:
		log.Warn().Str("alert", message).Msg("alert dropped")
	}
}

type Options struct {
	List          string
	ShowCompleted bool
	Order         view.Order
}

type Model struct {
	ctx    context.Context
	mirror *mirror.Mirror
	alerts Alerts
	events chan tea.Msg

	keys  keyMap
	help  help.Model
	input textinput.Model

	lists         []mirror.List
	selected      string
	listCursor    int
	itemCursor    int
	focus         focus
	mode          mode
	editing       int64
	held          *view.Payload
	showCompleted bool
	order         view.Order
	alert         string
	loading       bool
	now           time.Time
	width         int
}

func New(ctx context.Context, m *mirror.Mirror, alerts Alerts, opts Options) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 500

	model := Model{
		ctx:           ctx,
		mirror:        m,
		alerts:        alerts,
		events:        make(chan tea.Msg, 1),
		keys:          newKeyMap(),
		help:          help.New(),
		input:         input,
		selected:      opts.List,
		showCompleted: opts.ShowCompleted,
		order:         opts.Order,
		loading:       !m.Loaded(),
		now:           time.Now(),
		width:         defaultWidth,
	}

	if opts.List != "" {
		model.focus = focusItems
	}

	model.refresh()

	return model
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, m *mirror.Mirror, alerts Alerts, opts Options) error {
	_, err := run(ctx, m, alerts, opts, tea.WithAltScreen())

	return err
}

// run owns the model's context: the listeners started by Init stop once the program exits.
func run(ctx context.Context, m *mirror.Mirror, alerts Alerts, opts Options, programOpts ...tea.ProgramOption) (Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := New(ctx, m, alerts, opts)

	unsubscribe := m.Subscribe(model.changed)
	defer unsubscribe()

	programOpts = append(programOpts, tea.WithContext(ctx))
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return model, fmt.Errorf("running tui: %w", err)
	}

	return model, nil
}

// changed is the mirror subscription. Pending notifications collapse into one.
func (m Model) changed() {
	select {
	case m.events <- changedMsg{}:
	default:
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listen(), m.waitAlert(), tick()}

	if m.loading {
		cmds = append(cmds, m.load())
	}

	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return m, nil
	case tickMsg:
		m.now = time.Time(msg)

		return m, tick()
	case loadedMsg:
		m.loading = false
		m.refresh()

		return m, nil
	case changedMsg:
		m.refresh()

		return m, m.listen()
	case alertMsg:
		m.alert = string(msg)

		return m, m.waitAlert()
	case listAddedMsg:
		m.refresh()
		m.open(msg.slug)

		return m, nil
	case doneMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("action failed")
		}

		m.refresh()

		return m, nil
	case tea.KeyMsg:
		if m.alert != "" {
			m.alert = ""

			return m, nil
		}

		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}

		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmDeleteList {
		m.mode = modeBrowse

		if msg.String() == "y" {
			slug := m.selected

			return m, m.run(func(ctx context.Context) error { return m.mirror.DeleteList(ctx, slug) })
		}

		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()

		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		current := m.mode
		slug := m.selected
		id := m.editing

		m.closeInput()

		if value == "" {
			return m, nil
		}

		switch current {
		case modeAddItem:
			return m, m.run(func(ctx context.Context) error {
				_, err := m.mirror.AddItem(ctx, slug, value)

				return err
			})
		case modeEditItem:
			return m, m.run(func(ctx context.Context) error { return m.mirror.EditText(ctx, slug, id, value) })
		case modeNewList:
			return m, m.addList(value)
		case modeRenameList:
			return m, m.run(func(ctx context.Context) error { return m.mirror.RenameList(ctx, slug, value) })
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.SwitchPane):
		m.switchPane()

		return m, nil
	case key.Matches(msg, m.keys.ShowCompleted):
		m.showCompleted = !m.showCompleted
		m.clampItems()

		return m, nil
	case key.Matches(msg, m.keys.Sort):
		m.order = m.order.Toggle()

		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.held = nil

		return m, nil
	}

	if m.focus == focusLists {
		return m.updateLists(msg)
	}

	return m.updateItems(msg)
}

func (m Model) updateLists(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.listCursor = max(m.listCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.listCursor = min(m.listCursor+1, max(len(m.lists)-1, 0))
	case key.Matches(msg, m.keys.Open):
		if len(m.lists) == 0 {
			return m, nil
		}

		target := m.lists[m.listCursor].Slug

		if m.held != nil {
			payload := *m.held
			m.held = nil

			return m, m.run(func(ctx context.Context) error { return view.DropOnList(ctx, m.mirror, payload, target) })
		}

		m.open(target)
	case key.Matches(msg, m.keys.NewList):
		m.openInput(modeNewList, "List name", "")
	case key.Matches(msg, m.keys.RenameList):
		if list, ok := m.currentList(); ok {
			m.openInput(modeRenameList, "New name", list.Name)
		}
	case key.Matches(msg, m.keys.DeleteList):
		if _, ok := m.currentList(); ok {
			m.mode = modeConfirmDeleteList
		}
	}

	return m, nil
}

func (m Model) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.currentList(); !ok {
		return m, nil
	}

	if key.Matches(msg, m.keys.Add) {
		m.openInput(modeAddItem, "New to-do", "")

		return m, nil
	}

	visible := m.visible()
	if len(visible) == 0 {
		return m, nil
	}

	item := visible[m.itemCursor]
	payload := view.NewPayload(item)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.itemCursor = max(m.itemCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.itemCursor = min(m.itemCursor+1, len(visible)-1)
	case key.Matches(msg, m.keys.Toggle):
		return m, m.run(func(ctx context.Context) error {
			return m.mirror.SetCompleted(ctx, item.List, item.ID, !item.IsCompleted)
		})
	case key.Matches(msg, m.keys.Edit):
		found, edit, _ := view.DropOnZone(m.ctx, m.mirror, payload, view.ZoneEdit)
		if edit {
			m.editing = found.ID
			m.openInput(modeEditItem, "Text", found.Text)
		}
	case key.Matches(msg, m.keys.Delete):
		return m, m.run(func(ctx context.Context) error {
			_, _, err := view.DropOnZone(ctx, m.mirror, payload, view.ZoneDelete)

			return err
		})
	case key.Matches(msg, m.keys.PickUp):
		m.held = &payload
		m.focus = focusLists
	}

	return m, nil
}

func (m Model) View() string {
	if m.alert != "" {
		return alertStyle.Render(errorStyle.Render(m.alert) + "\n\n" + mutedStyle.Render("press any key"))
	}

	sidebar := paneStyle
	items := focusedPaneStyle

	if m.focus == focusLists {
		sidebar, items = focusedPaneStyle, paneStyle
	}

	itemsWidth := max(m.width-sidebarWidth-6, 30)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar.Width(sidebarWidth).Render(m.viewLists()),
		items.Width(itemsWidth).Render(m.viewItems()),
	)

	return body + "\n" + m.viewFooter()
}

func (m Model) viewLists() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lists") + "\n")

	if m.loading {
		b.WriteString(mutedStyle.Render("loading…"))

		return b.String()
	}

	for i, list := range m.lists {
		line := list.Name
		if list.Slug == m.selected {
			line = accentStyle.Render(line)
		}

		if i == m.listCursor && m.focus == focusLists {
			line = selectedStyle.Render(list.Name)
		}

		b.WriteString(line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewItems() string {
	list, ok := m.currentList()
	if !ok {
		return mutedStyle.Render(view.EmptyState)
	}

	var b strings.Builder

	completed := " "
	if m.showCompleted {
		completed = "x"
	}

	fmt.Fprintf(&b, "%s\n%s\n\n",
		titleStyle.Render(list.Name),
		mutedStyle.Render(fmt.Sprintf("[%s] %s · %s", completed, view.ShowCompletedLabel(list.Items), m.order)),
	)

	for i, item := range m.visible() {
		box, text := boxUnchecked, item.Text
		if item.IsCompleted {
			box, text = successStyle.Render(boxChecked), doneStyle.Render(item.Text)
		}

		prefix := "  "
		if i == m.itemCursor && m.focus == focusItems {
			prefix = selectedStyle.Render(">") + " "
		}

		fmt.Fprintf(&b, "%s%s %s  %s\n", prefix, box, text,
			mutedStyle.Render("Created "+view.TimeAgo(item.CreatedAt, m.now)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewFooter() string {
	switch m.mode {
	case modeConfirmDeleteList:
		list, _ := m.currentList()

		return errorStyle.Render(fmt.Sprintf("Delete %q and all its items? (y/n)", list.Name))
	case modeBrowse:
	default:
		return m.input.View()
	}

	if m.held != nil {
		if item, ok := view.Resolve(m.mirror, *m.held); ok {
			return accentStyle.Render(fmt.Sprintf("Moving %q: pick a list and press enter, esc to cancel", item.Text))
		}
	}

	return m.help.View(m.keys)
}

func (m *Model) refresh() {
	m.lists = m.mirror.Lists()
	m.listCursor = min(m.listCursor, max(len(m.lists)-1, 0))

	if m.selected != "" {
		if _, ok := m.mirror.List(m.selected); !ok && m.mirror.Loaded() {
			m.selected = ""
			m.focus = focusLists
		}
	}

	m.clampItems()
}

func (m *Model) open(slug string) {
	m.selected = slug
	m.focus = focusItems
	m.itemCursor = 0

	for i, list := range m.lists {
		if list.Slug == slug {
			m.listCursor = i
		}
	}
}

func (m *Model) switchPane() {
	if m.focus == focusLists {
		if _, ok := m.currentList(); ok {
			m.focus = focusItems
		}

		return
	}

	m.focus = focusLists
}

func (m *Model) clampItems() {
	m.itemCursor = min(m.itemCursor, max(len(m.visible())-1, 0))
}

func (m *Model) openInput(mode mode, placeholder, value string) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.editing = 0
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) currentList() (mirror.List, bool) {
	if m.selected == "" {
		return mirror.List{}, false
	}

	for _, list := range m.lists {
		if list.Slug == m.selected {
			return list, true
		}
	}

	return mirror.List{}, false
}

func (m Model) visible() []mirror.Item {
	list, ok := m.currentList()
	if !ok {
		return nil
	}

	return view.Visible(list.Items, m.showCompleted, m.order)
}

func (m Model) run(action func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: action(m.ctx)}
	}
}

func (m Model) addList(name string) tea.Cmd {
	return func() tea.Msg {
		slug, err := m.mirror.AddList(m.ctx, name)
		if err != nil {
			return doneMsg{err: err}
		}

		return listAddedMsg{slug: slug}
	}
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.mirror.Load(m.ctx)}
	}
}

func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) waitAlert() tea.Cmd {
	return func() tea.Msg {
		select {
		case message := <-m.alerts:
			return alertMsg(message)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(view.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
