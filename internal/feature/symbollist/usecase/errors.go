package usecase

import "errors"

// ErrSymbolNotFound is returned when no active symbol has the requested code.
var ErrSymbolNotFound = errors.New("symbol not found")
