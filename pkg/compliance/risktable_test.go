package compliance

import "testing"

func TestDefaultTableExactMatches(t *testing.T) {
	table := DefaultRiskTable()

	tests := []struct {
		identifier string
		expected   RiskTier
	}{
		{"MIT", TierLow},
		{"Apache-2.0", TierLow},
		{"BSD-3-Clause", TierLow},
		{"ISC", TierLow},
		{"MPL-2.0", TierMedium},
		{"LGPL-3.0", TierMedium},
		{"LGPL-2.1-or-later", TierMedium},
		{"GPL-2.0", TierHigh},
		{"GPL-3.0", TierHigh},
		{"GPL-3.0-only", TierHigh},
		{"AGPL-3.0", TierHigh},
		{"SSPL-1.0", TierHigh},
	}

	for _, tt := range tests {
		risk, ok := table.Lookup(tt.identifier)
		if !ok {
			t.Errorf("Lookup(%q) not found, want %s", tt.identifier, tt.expected)
			continue
		}
		if risk.Tier != tt.expected {
			t.Errorf("Lookup(%q) = %s, want %s", tt.identifier, risk.Tier, tt.expected)
		}
		if risk.Rationale == "" {
			t.Errorf("Lookup(%q) has no rationale", tt.identifier)
		}
	}
}

func TestExactMatchIsCaseSensitive(t *testing.T) {
	table := DefaultRiskTable()
	// "mit" is not an SPDX identifier; it must not exact-match, and no
	// fallback rule covers it, so it stays unrecognized.
	if _, ok := table.Lookup("mit"); ok {
		t.Error("lowercase \"mit\" should not match the MIT entry")
	}
}

func TestFallbackCatchesCopyleftVariants(t *testing.T) {
	table := DefaultRiskTable()

	tests := []struct {
		identifier string
		expected   RiskTier
	}{
		{"GPL-1.0", TierHigh},
		{"gpl-3.0", TierHigh}, // fallback matching is case-insensitive
		{"GNU GPL v3", TierHigh},
		{"AGPL-1.0", TierHigh},
		{"SSPL", TierHigh},
	}

	for _, tt := range tests {
		risk, ok := table.Lookup(tt.identifier)
		if !ok {
			t.Errorf("Lookup(%q) not found, want fallback %s", tt.identifier, tt.expected)
			continue
		}
		if risk.Tier != tt.expected {
			t.Errorf("Lookup(%q) = %s, want %s", tt.identifier, risk.Tier, tt.expected)
		}
	}
}

func TestExactMatchWinsOverFallback(t *testing.T) {
	table := DefaultRiskTable()
	// LGPL-3.0 contains "GPL", but the exact entry pins it to medium.
	risk, ok := table.Lookup("LGPL-3.0")
	if !ok || risk.Tier != TierMedium {
		t.Errorf("Lookup(LGPL-3.0) = %v/%v, want medium via exact match", risk.Tier, ok)
	}
}

func TestFallbackNeverLowersSeverity(t *testing.T) {
	// A fallback rule that would classify below unknown is inert, so an
	// identifier matching only that rule stays unrecognized.
	table := NewRiskTable(nil, []FallbackRule{
		{Marker: "BSD", Tier: TierLow, Rationale: "should never apply"},
	})
	risk, ok := table.Lookup("BSD-4-Clause")
	if ok {
		t.Errorf("downgrading fallback applied: got %s", risk.Tier)
	}
	if risk.Tier != TierUnknown {
		t.Errorf("unmatched identifier should report unknown, got %s", risk.Tier)
	}
}

func TestUnrecognizedIdentifier(t *testing.T) {
	table := DefaultRiskTable()
	risk, ok := table.Lookup("Custom-Corporate-1.0")
	if ok {
		t.Error("unrecognized identifier reported as known")
	}
	if risk.Tier != TierUnknown {
		t.Errorf("unrecognized identifier tier = %s, want unknown", risk.Tier)
	}
}

func TestOverrideDoesNotMutateReceiver(t *testing.T) {
	base := DefaultRiskTable()
	derived := base.Override("MIT", LicenseRisk{Tier: TierHigh, Rationale: "policy pin"})

	if risk, _ := base.Lookup("MIT"); risk.Tier != TierLow {
		t.Errorf("base table mutated by Override: MIT = %s", risk.Tier)
	}
	if risk, _ := derived.Lookup("MIT"); risk.Tier != TierHigh {
		t.Errorf("derived table missing override: MIT = %s", risk.Tier)
	}
}

func TestKnownIsSorted(t *testing.T) {
	ids := DefaultRiskTable().Known()
	if len(ids) == 0 {
		t.Fatal("default table has no known identifiers")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("Known() not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
}
