package presentation

import (
	"slices"
	"sync"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// Empty-state copy shown when the watchlist has no rows.
const (
	EmptyTitle       = "Your watchlist is empty"
	EmptyDescription = "Start tracking company stocks by adding them to your watchlist."
	EmptyAction      = "Browse Stocks"
	EmptyActionHref  = "/"
)

// RemovalPolicy decides what the table does with a row whose control
// reported a tentative removal.
type RemovalPolicy int

const (
	// KeepRemoved drops the row and never brings it back, even if the
	// removal is later reverted.
	KeepRemoved RemovalPolicy = iota
	// RestoreOnRevert drops the row but re-inserts it at its old position
	// when the control reverts to member.
	RestoreOnRevert
)

type droppedRow struct {
	row   entity.WatchlistRow
	index int
}

// Table is the client-side model of the watchlist table. Its
// OnMembershipChange method is meant to be passed as a Listener to the
// toggle control of every row.
type Table struct {
	policy RemovalPolicy

	mu      sync.Mutex
	rows    []entity.WatchlistRow
	dropped map[string]droppedRow
}

// NewTable copies rows, which are shown in the given order.
func NewTable(rows []entity.WatchlistRow, policy RemovalPolicy) *Table {
	return &Table{
		policy:  policy,
		rows:    slices.Clone(rows),
		dropped: make(map[string]droppedRow),
	}
}

// OnMembershipChange applies one membership notification.
//
//	member=false, any policy       -> drop the row (remember it under RestoreOnRevert)
//	member=true,  KeepRemoved      -> nothing
//	member=true,  RestoreOnRevert  -> re-insert a remembered row
func (t *Table) OnMembershipChange(symbol string, member bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case !member:
		i := slices.IndexFunc(t.rows, func(r entity.WatchlistRow) bool { return r.Symbol == symbol })
		if i < 0 {
			return
		}
		if t.policy == RestoreOnRevert {
			t.dropped[symbol] = droppedRow{row: t.rows[i], index: i}
		}
		t.rows = slices.Delete(t.rows, i, i+1)
	case t.policy == RestoreOnRevert:
		d, ok := t.dropped[symbol]
		if !ok {
			return
		}
		delete(t.dropped, symbol)
		t.rows = slices.Insert(t.rows, min(d.index, len(t.rows)), d.row)
	}
}

// Rows returns a copy of the visible rows.
func (t *Table) Rows() []entity.WatchlistRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.rows)
}

// Empty reports whether the empty state should be shown.
func (t *Table) Empty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows) == 0
}

// RowView is one formatted table row.
type RowView struct {
	Symbol      string
	Company     string
	Href        string
	Price       string
	Change      string
	ChangeClass string
	Toggle      ToggleView
}

// StockHref is the detail page of a symbol.
func StockHref(symbol string) string {
	return "/stocks/" + symbol
}

// BuildRows formats rows for rendering. Every row is a member, so its
// control offers removal; without an email the controls are disabled.
func BuildRows(rows []entity.WatchlistRow, email string) []RowView {
	views := make([]RowView, 0, len(rows))
	for _, r := range rows {
		views = append(views, RowView{
			Symbol:      r.Symbol,
			Company:     r.Company,
			Href:        StockHref(r.Symbol),
			Price:       FormatPrice(r.Price),
			Change:      FormatChange(r.Change, r.ChangePercent),
			ChangeClass: ChangeClass(r.Change),
			Toggle:      NewToggleControl(r.Symbol, r.Company, email, true, nil, nil).View(),
		})
	}
	return views
}
