package engine

import "github.com/shopspring/decimal"

// AchievementPercent returns round-half-up(100 * actual / plan). With no
// plan it is 100 when anything was produced and 0 otherwise.
func AchievementPercent(actual, plan int) int {
	if plan <= 0 {
		if actual > 0 {
			return 100
		}
		return 0
	}
	ratio := decimal.NewFromInt(int64(actual)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(plan)))
	return int(ratio.Round(0).IntPart())
}
