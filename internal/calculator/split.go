package calculator

import (
	"github.com/shopspring/decimal"

	"TravelLedger/internal/entity"
)

var (
	hundred = decimal.NewFromInt(100)

	// Tolerance is the largest gap allowed between an expense amount and
	// the sum of its splits.
	Tolerance = decimal.New(1, -2)
)

// Round2 rounds d to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// EqualSplit divides amount evenly among participantIDs, in the order given.
//
// Each share is amount/n rounded to cents and each percentage is 100/n
// rounded to two places. Whatever the rounding leaves over, in either
// column, is added to the last share so the shares sum to amount exactly.
func EqualSplit(amount decimal.Decimal, participantIDs []string) []entity.Split {
	n := len(participantIDs)
	if n == 0 {
		return nil
	}

	count := decimal.NewFromInt(int64(n))
	perHead := Round2(amount.Div(count))
	perPercent := Round2(hundred.Div(count))

	splits := make([]entity.Split, n)
	for i, id := range participantIDs {
		splits[i] = entity.Split{
			ParticipantID: id,
			Amount:        perHead,
			Percentage:    decimal.NewNullDecimal(perPercent),
		}
	}

	fixRemainder(splits, amount)

	last := &splits[n-1]
	percentRemainder := hundred.Sub(perPercent.Mul(count))
	if !percentRemainder.IsZero() {
		last.Percentage = decimal.NewNullDecimal(last.Percentage.Decimal.Add(percentRemainder))
	}

	return splits
}

// Rescale scales every split by newAmount/oldAmount, keeping the ratios
// between them. Percentages are left untouched.
func Rescale(splits []entity.Split, oldAmount, newAmount decimal.Decimal) []entity.Split {
	out := make([]entity.Split, len(splits))
	copy(out, splits)
	if len(out) == 0 || oldAmount.IsZero() {
		return out
	}

	ratio := newAmount.Div(oldAmount)
	for i := range out {
		out[i].Amount = Round2(out[i].Amount.Mul(ratio))
	}

	fixRemainder(out, newAmount)
	return out
}

// SumSplits returns the sum of all split amounts.
func SumSplits(splits []entity.Split) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}

// SumMatches reports whether splits add up to amount within Tolerance.
func SumMatches(splits []entity.Split, amount decimal.Decimal) bool {
	return SumSplits(splits).Sub(amount).Abs().LessThanOrEqual(Tolerance)
}

// fixRemainder moves any cent left over by rounding onto the last split.
func fixRemainder(splits []entity.Split, amount decimal.Decimal) {
	if len(splits) == 0 {
		return
	}
	remainder := amount.Sub(SumSplits(splits))
	if remainder.IsZero() {
		return
	}
	last := &splits[len(splits)-1]
	last.Amount = last.Amount.Add(remainder)
}
