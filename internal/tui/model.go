package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpalmerr/productboard/internal/client"
	"github.com/jpalmerr/productboard/product"
	"github.com/jpalmerr/productboard/view"
)

const defaultTitle = "ProductBoard"

// Source is the upstream the terminal view reads from.
// *client.Client satisfies it.
type Source interface {
	FetchProducts(ctx context.Context) ([]product.Product, error)
	ProbeHealth(ctx context.Context) client.HealthStatus
}

// Option configures a [Model].
type Option func(*Model)

// WithTitle sets the heading shown above the table.
func WithTitle(title string) Option {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

// WithLogger sets the logger used for fetch and export failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithExportFunc replaces the function that writes the exported CSV file.
func WithExportFunc(write func(name string, data []byte) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeFile = write
		}
	}
}

// WithClock overrides the time source for last-updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// Model is the bubbletea model of the product view.
type Model struct {
	ctx    context.Context
	source Source
	state  view.State

	search  textinput.Model
	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    KeyMap

	title     string
	notice    string
	logger    *slog.Logger
	writeFile func(name string, data []byte) error
	now       func() time.Time

	width  int
	height int
}

type productsLoadedMsg struct {
	products []product.Product
	at       time.Time
}

type productsFailedMsg struct {
	message string
}

type healthMsg struct {
	status view.HealthStatus
}

type exportedMsg struct {
	name string
	rows int
	err  error
}

// New creates the product view. Nothing is fetched until the program calls Init.
func New(ctx context.Context, source Source, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = view.SearchPlaceholder
	search.Prompt = "Search: "
	search.CharLimit = 128
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	m := &Model{
		ctx:       ctx,
		source:    source,
		state:     view.Initial(),
		search:    search,
		table:     t,
		spinner:   s,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		title:     defaultTitle,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		writeFile: writeExportFile,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current view state.
func (m *Model) State() view.State {
	return m.state
}

// Init starts the product fetch and the health probe.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchProducts(),
		m.probeHealth(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(3, msg.Height-12))

	case spinner.TickMsg:
		if m.state.Status() != view.FetchLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case productsLoadedMsg:
		m.dispatch(view.FetchSucceeded{Products: msg.products, At: msg.at})

	case productsFailedMsg:
		m.search.Blur()
		m.dispatch(view.FetchFailed{Message: msg.message})

	case healthMsg:
		m.dispatch(view.HealthResolved{Status: msg.status})

	case exportedMsg:
		if msg.err != nil {
			m.logger.Error("export failed", "file", msg.name, "error", msg.err)
			m.notice = "Export failed: " + msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("Exported %d products to %s", msg.rows, msg.name)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m, tea.Quit
	}

	// loading and error branches have no controls
	if m.state.Status() != view.FetchReady {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.search.Focused() {
		if key.Matches(msg, m.keys.LeaveSearch) {
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if term := m.search.Value(); term != m.state.Params().SearchTerm {
			m.dispatch(view.SearchChanged{Term: term})
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.NextCat):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCat):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Sort):
		m.dispatch(view.SortToggled{})
	case key.Matches(msg, m.keys.Clear):
		m.dispatch(view.FiltersCleared{})
		m.search.SetValue("")
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Refresh):
		if m.state.Refreshing() {
			return m, nil
		}
		m.dispatch(view.FetchStarted{})
		return m, m.fetchProducts()
	case key.Matches(msg, m.keys.Export):
		return m, m.export()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current branch.
func (m *Model) View() string {
	model := view.Render(m.state)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(healthStyle(model.Health.Color).Render("● " + model.Health.Label))
	b.WriteString("\n\n")

	switch model.Branch {
	case view.BranchLoading:
		b.WriteString(m.spinner.View() + " " + model.Message + "\n")
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
		return b.String()
	case view.BranchError:
		b.WriteString(errorStyle.Render(model.Message) + "\n")
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
		return b.String()
	}

	b.WriteString(m.search.View() + "\n")
	b.WriteString(renderCategories(model.Categories, model.Category) + "\n")
	b.WriteString(mutedStyle.Render(model.SortLabel+"  ·  "+model.RefreshLabel) + "\n\n")

	if len(model.Rows) == 0 {
		b.WriteString(boxStyle.Render(model.EmptyMessage) + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	footer := model.Summary
	if model.LastUpdated != "" {
		footer += "  " + model.LastUpdated
	}
	b.WriteString(mutedStyle.Render(footer) + "\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) dispatch(action view.Action) {
	m.state = view.Reduce(m.state, action)
	m.syncTable()
}

func (m *Model) syncTable() {
	visible := m.state.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, p := range visible {
		rows = append(rows, table.Row{p.Name, p.Category, "$" + product.FormatPrice(p.Price)})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) cycleCategory(delta int) {
	cats := m.state.Categories()
	if len(cats) == 0 {
		return
	}
	idx := slices.Index(cats, m.state.Params().Category)
	if idx < 0 {
		idx = 0
	}
	next := (idx + delta + len(cats)) % len(cats)
	m.dispatch(view.CategorySelected{Category: cats[next]})
}

func (m *Model) fetchProducts() tea.Cmd {
	ctx, source, now, logger := m.ctx, m.source, m.now, m.logger
	return func() tea.Msg {
		products, err := source.FetchProducts(ctx)
		if err != nil {
			logger.Warn("product fetch failed", "error", err.Error())
			return productsFailedMsg{message: view.ErrorMessage(client.ServerMessage(err))}
		}
		return productsLoadedMsg{products: products, at: now()}
	}
}

func (m *Model) probeHealth() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		status := view.HealthOffline
		if source.ProbeHealth(ctx).Online() {
			status = view.HealthOnline
		}
		return healthMsg{status: status}
	}
}

// export returns nil when there is nothing to write.
func (m *Model) export() tea.Cmd {
	data, ok := m.state.ExportCSV()
	if !ok {
		return nil
	}
	write := m.writeFile
	rows := len(m.state.Visible())
	return func() tea.Msg {
		err := write(product.ExportFilename, data)
		return exportedMsg{name: product.ExportFilename, rows: rows, err: err}
	}
}

func writeExportFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}

func renderCategories(categories []string, selected string) string {
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == selected {
			parts = append(parts, activeCategoryStyle.Render(c))
			continue
		}
		parts = append(parts, categoryStyle.Render(c))
	}
	return strings.Join(parts, " ")
}

func columns(width int) []table.Column {
	available := max(40, width-10)
	return []table.Column{
		{Title: "Name", Width: available / 2},
		{Title: "Category", Width: available / 4},
		{Title: "Price", Width: available / 4},
	}
}
