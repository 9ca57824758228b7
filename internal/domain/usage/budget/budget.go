package budget

// Budget is a snapshot of the local keyword credit budget for one period.
type Budget struct {
	creditsLimit     int64
	creditsRemaining int64
	isExhausted      bool
	resetsAt         int64 // unix millis
}

// New creates a Budget snapshot. A zero limit means unlimited, reported
// with remaining -1.
func New(limit, remaining int64, isExhausted bool, resetsAt int64) Budget {
	return Budget{
		creditsLimit:     limit,
		creditsRemaining: remaining,
		isExhausted:      isExhausted,
		resetsAt:         resetsAt,
	}
}

// FromUsage derives a snapshot from a limit and the credits already spent.
func FromUsage(limit, used, resetsAt int64) Budget {
	if limit <= 0 {
		return New(0, -1, false, resetsAt)
	}
	remaining := max(limit-used, 0)
	return New(limit, remaining, remaining == 0, resetsAt)
}

func (b Budget) CreditsLimit() int64     { return b.creditsLimit }
func (b Budget) CreditsRemaining() int64 { return b.creditsRemaining }
func (b Budget) IsExhausted() bool       { return b.isExhausted }
func (b Budget) ResetsAt() int64         { return b.resetsAt }

// Unlimited reports whether no cap applies.
func (b Budget) Unlimited() bool { return b.creditsLimit <= 0 }

// Allows reports whether spending credits more would stay within the cap.
func (b Budget) Allows(credits int64) bool {
	return b.Unlimited() || credits <= b.creditsRemaining
}
