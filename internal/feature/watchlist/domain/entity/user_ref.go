package entity

// UserRef identifies the owner of watchlist entries.
// It is produced once at the user directory boundary so the rest of the
// feature never inspects the shape of the underlying user record.
type UserRef struct {
	Identifier string
}

// IsZero reports whether the reference carries no identifier.
func (u UserRef) IsZero() bool {
	return u.Identifier == ""
}
