package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelLedger/internal/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amounts(splits []entity.Split) []string {
	out := make([]string, 0, len(splits))
	for _, s := range splits {
		out = append(out, s.Amount.StringFixed(2))
	}
	return out
}

func percentages(splits []entity.Split) []string {
	out := make([]string, 0, len(splits))
	for _, s := range splits {
		out = append(out, s.Percentage.Decimal.StringFixed(2))
	}
	return out
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []string
		wantAmounts  []string
		wantPercents []string
	}{
		{
			name:         "three ways leaves a cent on the last share",
			amount:       "100.00",
			participants: []string{"a", "b", "c"},
			wantAmounts:  []string{"33.33", "33.33", "33.34"},
			wantPercents: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:         "even split has no remainder",
			amount:       "90",
			participants: []string{"a", "b", "c"},
			wantAmounts:  []string{"30.00", "30.00", "30.00"},
			wantPercents: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:         "rounding up is corrected downwards",
			amount:       "0.05",
			participants: []string{"a", "b", "c"},
			wantAmounts:  []string{"0.02", "0.02", "0.01"},
			wantPercents: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:         "single participant takes everything",
			amount:       "12.34",
			participants: []string{"a"},
			wantAmounts:  []string{"12.34"},
			wantPercents: []string{"100.00"},
		},
		{
			name:         "seven ways",
			amount:       "100",
			participants: []string{"a", "b", "c", "d", "e", "f", "g"},
			wantAmounts:  []string{"14.29", "14.29", "14.29", "14.29", "14.29", "14.29", "14.26"},
			wantPercents: []string{"14.29", "14.29", "14.29", "14.29", "14.29", "14.29", "14.26"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := EqualSplit(d(tt.amount), tt.participants)

			require.Len(t, splits, len(tt.participants))
			for i, s := range splits {
				assert.Equal(t, tt.participants[i], s.ParticipantID)
			}
			assert.Equal(t, tt.wantAmounts, amounts(splits))
			assert.Equal(t, tt.wantPercents, percentages(splits))
			assert.True(t, SumSplits(splits).Equal(d(tt.amount)), "shares must sum to the amount exactly")
		})
	}
}

func TestEqualSplitNoParticipants(t *testing.T) {
	assert.Empty(t, EqualSplit(d("10"), nil))
}

func TestRescale(t *testing.T) {
	tests := []struct {
		name        string
		splits      []entity.Split
		oldAmount   string
		newAmount   string
		wantAmounts []string
	}{
		{
			name: "keeps manual ratios",
			splits: []entity.Split{
				{ParticipantID: "a", Amount: d("20")},
				{ParticipantID: "b", Amount: d("30")},
			},
			oldAmount:   "50",
			newAmount:   "80",
			wantAmounts: []string{"32.00", "48.00"},
		},
		{
			name: "rounding remainder lands on the last split",
			splits: []entity.Split{
				{ParticipantID: "a", Amount: d("33.33")},
				{ParticipantID: "b", Amount: d("33.33")},
				{ParticipantID: "c", Amount: d("33.34")},
			},
			oldAmount:   "100",
			newAmount:   "200.01",
			wantAmounts: []string{"66.66", "66.66", "66.69"},
		},
		{
			name: "zero old amount leaves splits alone",
			splits: []entity.Split{
				{ParticipantID: "a", Amount: d("5")},
			},
			oldAmount:   "0",
			newAmount:   "10",
			wantAmounts: []string{"5.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(tt.splits, d(tt.oldAmount), d(tt.newAmount))
			assert.Equal(t, tt.wantAmounts, amounts(got))
		})
	}
}

func TestRescaleDoesNotMutateInput(t *testing.T) {
	in := []entity.Split{{ParticipantID: "a", Amount: d("10")}}

	_ = Rescale(in, d("10"), d("20"))

	assert.Equal(t, "10.00", in[0].Amount.StringFixed(2))
}

func TestSumMatches(t *testing.T) {
	splits := []entity.Split{
		{ParticipantID: "a", Amount: d("33.33")},
		{ParticipantID: "b", Amount: d("33.33")},
		{ParticipantID: "c", Amount: d("33.33")},
	}

	assert.True(t, SumMatches(splits, d("100")), "0.01 gap is within tolerance")
	assert.False(t, SumMatches(splits, d("100.02")))
	assert.False(t, SumMatches(splits, d("99.97")))
}
