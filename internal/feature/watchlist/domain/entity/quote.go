package entity

// Quote is the current price snapshot for a symbol.
type Quote struct {
	Price         float64 // Current price
	Change        float64 // Absolute change since previous close
	ChangePercent float64 // Percent change since previous close
}
