package bot

// AuthFilter decides whether a user may issue commands.
type AuthFilter interface {
	IsAllowed(id UserID) bool
}

// Whitelist allows a fixed set of users. It is never modified after
// construction and is safe to share between bots.
type Whitelist struct {
	allowed map[UserID]struct{}
}

// NewWhitelist builds a whitelist from numeric user ids.
func NewWhitelist(ids []uint64) *Whitelist {
	allowed := make(map[UserID]struct{}, len(ids))
	for _, id := range ids {
		allowed[UserID(id)] = struct{}{}
	}
	return &Whitelist{allowed: allowed}
}

func (w *Whitelist) IsAllowed(id UserID) bool {
	_, ok := w.allowed[id]
	return ok
}

// Len returns the number of allowed users.
func (w *Whitelist) Len() int {
	return len(w.allowed)
}
