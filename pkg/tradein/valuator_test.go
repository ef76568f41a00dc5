package tradein

import (
	"errors"
	"testing"

	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/validation"
)

func storeRange() Range {
	return Range{
		DeviceModel: "Galaxy S21",
		StoreID:     "store-1",
		Min:         180000,
		Max:         240000,
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name        string
		deductions  []Deduction
		expectedMin money.Cents
		expectedMax money.Cents
	}{
		{
			name:        "No deductions keeps the raw range",
			deductions:  nil,
			expectedMin: 180000,
			expectedMax: 240000,
		},
		{
			name: "Single deduction lowers both ends",
			deductions: []Deduction{
				{Name: "Tela trincada", Discount: 50000},
			},
			expectedMin: 130000,
			expectedMax: 190000,
		},
		{
			name: "Multiple deductions sum",
			deductions: []Deduction{
				{Name: "Tela trincada", Discount: 50000},
				{Name: "Bateria viciada", Discount: 30000},
			},
			expectedMin: 100000,
			expectedMax: 160000,
		},
		{
			name: "Deductions beyond the minimum floor it at zero",
			deductions: []Deduction{
				{Name: "Tela trincada", Discount: 200000},
			},
			expectedMin: 0,
			expectedMax: 40000,
		},
		{
			name: "Deductions beyond the maximum floor both at zero",
			deductions: []Deduction{
				{Name: "Carcaça amassada", Discount: 300000},
			},
			expectedMin: 0,
			expectedMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggested, err := Suggest(storeRange(), tt.deductions)
			if err != nil {
				t.Fatalf("Suggest() unexpected error: %v", err)
			}
			if suggested.Min != tt.expectedMin {
				t.Errorf("Min = %d, expected %d", suggested.Min, tt.expectedMin)
			}
			if suggested.Max != tt.expectedMax {
				t.Errorf("Max = %d, expected %d", suggested.Max, tt.expectedMax)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cracked := Deduction{Name: "Tela trincada", Discount: 50000}

	tests := []struct {
		name         string
		deductions   []Deduction
		proposed     money.Cents
		expectValid  bool
		expectedKind FailureKind
	}{
		{
			name:        "Value inside the range",
			proposed:    200000,
			expectValid: true,
		},
		{
			name:        "Exactly the store maximum with no deductions",
			proposed:    240000,
			expectValid: true,
		},
		{
			name:        "Exactly the store minimum",
			proposed:    180000,
			expectValid: true,
		},
		{
			name:        "Zero means trade-in declined and bypasses the minimum",
			proposed:    0,
			expectValid: true,
		},
		{
			name:         "Negative value",
			proposed:     -1,
			expectValid:  false,
			expectedKind: FailureInvalidValue,
		},
		{
			name:         "Above the raw store maximum",
			proposed:     250000,
			expectValid:  false,
			expectedKind: FailureExceedsStoreMaximum,
		},
		{
			name:         "Below the store minimum",
			proposed:     100000,
			expectValid:  false,
			expectedKind: FailureBelowStoreMinimum,
		},
		{
			name:         "One cent below the minimum",
			proposed:     179999,
			expectValid:  false,
			expectedKind: FailureBelowStoreMinimum,
		},
		{
			name:         "Within raw range but above the deduction-adjusted ceiling",
			deductions:   []Deduction{cracked},
			proposed:     200000,
			expectValid:  false,
			expectedKind: FailureExceedsAdjustedMaximum,
		},
		{
			name:         "Store maximum fails once any deduction applies",
			deductions:   []Deduction{cracked},
			proposed:     240000,
			expectValid:  false,
			expectedKind: FailureExceedsAdjustedMaximum,
		},
		{
			name:        "Adjusted maximum itself is accepted",
			deductions:  []Deduction{cracked},
			proposed:    190000,
			expectValid: true,
		},
		{
			name:        "Zero stays valid with deductions",
			deductions:  []Deduction{cracked},
			proposed:    0,
			expectValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(storeRange(), tt.deductions, tt.proposed)
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if result.Valid != tt.expectValid {
				t.Fatalf("Valid = %v, expected %v (kind %q, message %q)",
					result.Valid, tt.expectValid, result.Kind, result.Message)
			}
			if !tt.expectValid {
				if result.Kind != tt.expectedKind {
					t.Errorf("Kind = %q, expected %q", result.Kind, tt.expectedKind)
				}
				if result.Message == "" {
					t.Error("rejections must carry an actionable message")
				}
			}
		})
	}
}

func TestValidateRawMaxBeatsAdjustedMax(t *testing.T) {
	// Rule order is a contract: a value above both ceilings must report the
	// raw store maximum, not the adjusted one.
	result, err := Validate(storeRange(), []Deduction{{Name: "Tela trincada", Discount: 50000}}, 300000)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if result.Kind != FailureExceedsStoreMaximum {
		t.Errorf("Kind = %q, expected %q", result.Kind, FailureExceedsStoreMaximum)
	}
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name      string
		r         Range
		expectErr bool
	}{
		{"Valid range", Range{DeviceModel: "X", Min: 1, Max: 2}, false},
		{"Min equals max", Range{DeviceModel: "X", Min: 2, Max: 2}, true},
		{"Min above max", Range{DeviceModel: "X", Min: 3, Max: 2}, true},
		{"Zero min", Range{DeviceModel: "X", Min: 0, Max: 2}, true},
		{"Negative min", Range{DeviceModel: "X", Min: -1, Max: 2}, true},
		{"Zero max", Range{DeviceModel: "X", Min: 1, Max: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.expectErr {
				if err == nil {
					t.Fatal("Validate() expected a ConfigurationError")
				}
				var confErr *validation.ConfigurationError
				if !errors.As(err, &confErr) {
					t.Errorf("error = %v, expected ConfigurationError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestSuggestRejectsNegativeDeduction(t *testing.T) {
	_, err := Suggest(storeRange(), []Deduction{{Name: "Inválido", Discount: -1}})
	if err == nil {
		t.Fatal("Suggest() expected a ConfigurationError for a negative discount")
	}
}

func TestTotalDeduction(t *testing.T) {
	total := TotalDeduction([]Deduction{
		{Name: "a", Discount: 100},
		{Name: "b", Discount: 250},
		{Name: "c", Discount: 0},
	})
	if total != 350 {
		t.Errorf("TotalDeduction = %d, expected 350", total)
	}
}
