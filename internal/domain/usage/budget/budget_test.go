package budget

import "testing"

func TestFromUsage(t *testing.T) {
	tests := []struct {
		name          string
		limit, used   int64
		wantRemaining int64
		wantExhausted bool
		wantUnlimited bool
	}{
		{name: "unlimited", limit: 0, used: 500, wantRemaining: -1, wantUnlimited: true},
		{name: "partial", limit: 10000, used: 3900, wantRemaining: 6100},
		{name: "exact", limit: 100, used: 100, wantRemaining: 0, wantExhausted: true},
		{name: "overspent", limit: 100, used: 140, wantRemaining: 0, wantExhausted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromUsage(tt.limit, tt.used, 1700000000000)
			if b.CreditsRemaining() != tt.wantRemaining {
				t.Errorf("CreditsRemaining() = %d, want %d", b.CreditsRemaining(), tt.wantRemaining)
			}
			if b.IsExhausted() != tt.wantExhausted {
				t.Errorf("IsExhausted() = %v", b.IsExhausted())
			}
			if b.Unlimited() != tt.wantUnlimited {
				t.Errorf("Unlimited() = %v", b.Unlimited())
			}
			if b.ResetsAt() != 1700000000000 {
				t.Errorf("ResetsAt() = %d", b.ResetsAt())
			}
		})
	}
}

func TestBudget_Allows(t *testing.T) {
	b := FromUsage(100, 95, 0)
	if !b.Allows(5) {
		t.Error("5 credits should fit in 5 remaining")
	}
	if b.Allows(6) {
		t.Error("6 credits should not fit in 5 remaining")
	}
	if !FromUsage(0, 1e6, 0).Allows(1e6) {
		t.Error("unlimited budget should allow anything")
	}
}
