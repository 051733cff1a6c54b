// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem is the public view of a catalog symbol.
type SymbolItem struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}
