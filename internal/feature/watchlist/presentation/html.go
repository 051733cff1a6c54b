package presentation

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ToggleAction is the form endpoint used by page toggle buttons.
const ToggleAction = "/watchlist/toggle"

// EmptyState is the copy of the empty watchlist placeholder.
type EmptyState struct {
	Title       string
	Description string
	Action      string
	ActionHref  string
}

// WatchlistPage is the data of the watchlist page.
type WatchlistPage struct {
	Email        string
	Rows         []RowView
	Empty        EmptyState
	Flash        string
	ToggleAction string
	ReturnTo     string
}

// NewWatchlistPage formats rows for the signed-in user.
func NewWatchlistPage(email string, rows []RowView, flash string) WatchlistPage {
	return WatchlistPage{
		Email: email,
		Rows:  rows,
		Empty: EmptyState{
			Title:       EmptyTitle,
			Description: EmptyDescription,
			Action:      EmptyAction,
			ActionHref:  EmptyActionHref,
		},
		Flash:        flash,
		ToggleAction: ToggleAction,
		ReturnTo:     "/watchlist",
	}
}

// Instrument is one entry of the browsable catalog.
type Instrument struct {
	Symbol string
	Name   string
	Market string
}

// BrowseItem is one catalog row with its watch button.
type BrowseItem struct {
	Instrument
	Href   string
	Toggle ToggleView
}

// BrowsePage is the data of the catalog page.
type BrowsePage struct {
	Email        string
	Items        []BrowseItem
	Flash        string
	ToggleAction string
	ReturnTo     string
}

// NewBrowsePage marks the instruments whose symbol is in watched.
func NewBrowsePage(email string, instruments []Instrument, watched []string, flash string) BrowsePage {
	items := make([]BrowseItem, 0, len(instruments))
	for _, in := range instruments {
		member := slices.Contains(watched, in.Symbol)
		items = append(items, BrowseItem{
			Instrument: in,
			Href:       StockHref(in.Symbol),
			Toggle:     NewToggleControl(in.Symbol, in.Name, email, member, nil, nil).View(),
		})
	}
	return BrowsePage{
		Email:        email,
		Items:        items,
		Flash:        flash,
		ToggleAction: ToggleAction,
		ReturnTo:     "/",
	}
}

type toggleForm struct {
	Action   string
	ReturnTo string
	Toggle   ToggleView
}

var templateFuncs = template.FuncMap{
	"toggleForm": func(action, returnTo string, t ToggleView) toggleForm {
		return toggleForm{Action: action, ReturnTo: returnTo, Toggle: t}
	},
}

// HTMLRenderer renders the server-side pages.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("pages").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Watchlist writes the watchlist page.
func (r *HTMLRenderer) Watchlist(w io.Writer, page WatchlistPage) error {
	return r.tmpl.ExecuteTemplate(w, "watchlist.tmpl", page)
}

// Browse writes the catalog page.
func (r *HTMLRenderer) Browse(w io.Writer, page BrowsePage) error {
	return r.tmpl.ExecuteTemplate(w, "browse.tmpl", page)
}
