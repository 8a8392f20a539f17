package group

// Member is one group membership row, owned by the surrounding product. This
// core only ever reads it.
type Member struct {
	UserID  string
	IsAdmin bool
}
