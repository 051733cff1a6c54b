// Package dto defines the Finnhub response payloads.
package dto

// QuoteResponse is the body of GET /quote.
// Change fields are null for symbols Finnhub does not know.
type QuoteResponse struct {
	Current       float64  `json:"c"`
	Change        *float64 `json:"d"`
	ChangePercent *float64 `json:"dp"`
	High          float64  `json:"h"`
	Low           float64  `json:"l"`
	Open          float64  `json:"o"`
	PreviousClose float64  `json:"pc"`
	Timestamp     int64    `json:"t"`
}

// ErrorResponse is returned by Finnhub alongside 4xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}
