package market

import (
	"fmt"
	"math"
	"strconv"
)

// Classify maps a six-month cumulative change of the CSI 300 index to a
// market condition. Boundaries at ±15 are inclusive: exactly +15 is a
// bull market and exactly -15 a bear market.
func Classify(sixMonthChange float64) Analysis {
	if sixMonthChange >= 15 {
		return Analysis{
			Condition:  Bull,
			Reason:     fmt.Sprintf("沪深300近半年强势上涨，累计涨幅%s%%，市场趋势向好", formatChange(sixMonthChange)),
			Confidence: "高",
		}
	}
	if sixMonthChange <= -15 {
		return Analysis{
			Condition:  Bear,
			Reason:     fmt.Sprintf("沪深300近半年持续调整，累计跌幅%s%%，市场疲弱", formatChange(math.Abs(sixMonthChange))),
			Confidence: "高",
		}
	}
	sign := ""
	if sixMonthChange >= 0 {
		sign = "+"
	}
	return Analysis{
		Condition:  Choppy,
		Reason:     fmt.Sprintf("沪深300近半年震荡整理，累计涨跌幅%s%s%%", sign, formatChange(sixMonthChange)),
		Confidence: "中",
	}
}

func formatChange(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
