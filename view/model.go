package view

import (
	"fmt"
	"time"

	"github.com/jpalmerr/productboard/product"
)

// Branch is one of the mutually exclusive render branches.
type Branch string

const (
	// BranchLoading shows a loading message and no controls.
	BranchLoading Branch = "loading"

	// BranchError shows the error message, no controls and no retry.
	BranchError Branch = "error"

	// BranchReady shows the controls, the table and the row count.
	BranchReady Branch = "ready"
)

const (
	// LoadingMessage is shown while the first fetch is in flight.
	LoadingMessage = "Loading products..."

	// EmptyTableMessage is shown as the only table row when nothing matches.
	EmptyTableMessage = "No matching products found."

	// SearchPlaceholder is the hint shown in the empty search box.
	SearchPlaceholder = "Search by name (press /)"
)

// Row is one rendered table row.
type Row struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Display  string  `json:"display_price"`
}

// Health is the rendered health indicator.
type Health struct {
	Status HealthStatus `json:"status"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
}

// Model is everything a front end needs to draw the dashboard.
//
// Model is derived from a [State] by [Render] and is safe to serialise.
// Fields that only apply to [BranchReady] are zero in the other branches.
type Model struct {
	Branch  Branch `json:"branch"`
	Message string `json:"message,omitempty"`
	Health  Health `json:"health"`

	SearchTerm string   `json:"search_term"`
	Category   string   `json:"category"`
	SortDir    string   `json:"sort_dir"`
	Categories []string `json:"categories,omitempty"`

	Rows         []Row  `json:"rows"`
	Total        int    `json:"total"`
	Summary      string `json:"summary,omitempty"`
	Refreshing   bool   `json:"refreshing"`
	RefreshLabel string `json:"refresh_label,omitempty"`
	SortLabel    string `json:"sort_label,omitempty"`
	CanExport    bool   `json:"can_export"`
	EmptyMessage string `json:"empty_message,omitempty"`

	LastUpdated   string     `json:"last_updated,omitempty"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
}

// Render derives the [Model] for s.
func Render(s State) Model {
	params := s.params.Normalize()
	m := Model{
		Health: Health{
			Status: s.health,
			Label:  s.health.Label(),
			Color:  s.health.Color(),
		},
		SearchTerm: params.SearchTerm,
		Category:   params.Category,
		SortDir:    string(params.SortDir),
	}

	switch s.status {
	case FetchLoading:
		m.Branch = BranchLoading
		m.Message = LoadingMessage
		return m
	case FetchError:
		m.Branch = BranchError
		m.Message = s.err
		return m
	}

	visible := s.Visible()

	m.Branch = BranchReady
	m.Categories = s.Categories()
	m.Rows = make([]Row, len(visible))
	for i, p := range visible {
		m.Rows[i] = Row{
			ID:       p.ID.String(),
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Display:  "$" + product.FormatPrice(p.Price),
		}
	}
	m.Total = len(s.products)
	m.Summary = Summary(len(visible), len(s.products))
	m.Refreshing = s.refreshing
	m.RefreshLabel = RefreshLabel(s.refreshing)
	m.SortLabel = SortLabel(params.SortDir)
	m.CanExport = len(visible) > 0
	if len(visible) == 0 {
		m.EmptyMessage = EmptyTableMessage
	}
	if !s.lastUpdated.IsZero() {
		at := s.lastUpdated
		m.LastUpdatedAt = &at
		m.LastUpdated = "Last updated: " + at.Format(time.TimeOnly)
	}

	return m
}

// Summary returns the row count line, e.g. "Showing 2 / 3 products".
func Summary(shown, total int) string {
	return fmt.Sprintf("Showing %d / %d products", shown, total)
}

// RefreshLabel returns the refresh button text.
func RefreshLabel(refreshing bool) string {
	if refreshing {
		return "Refreshing..."
	}
	return "Refresh"
}

// SortLabel returns the sort button text.
func SortLabel(dir product.SortDir) string {
	if dir == product.SortDesc {
		return "Sort: Price ↓"
	}
	return "Sort: Price ↑"
}
