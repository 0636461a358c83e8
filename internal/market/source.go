package market

import (
	"context"
	"time"
)

// Source fetches a market snapshot. Implementations may call a real
// market data provider; SimulatedSource stands in where none is wired.
type Source interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// SimulatedSource serves a fixed CSI 300 snapshot modeled on the
// 2025-07 to 2026-01 index run. A production deployment would replace
// this with a provider-backed source (Eastmoney, Sina, Tencent, Wind).
type SimulatedSource struct{}

// Fetch returns the simulated snapshot dated today.
func (SimulatedSource) Fetch(_ context.Context) (Snapshot, error) {
	return Snapshot{
		Date: time.Now().Format("2006-01-02"),
		CS300Index: IndexData{
			Name:         "沪深300指数",
			Code:         "000300",
			Current:      4250.5,
			SixMonthsAgo: 3480.2,
			Change:       22.1,
			MonthlyData: []MonthlyPoint{
				{Month: "2025-07", Close: 3480.2, Change: -2.3, Volume: "一般"},
				{Month: "2025-08", Close: 3520.5, Change: 1.2, Volume: "一般"},
				{Month: "2025-09", Close: 3680.8, Change: 4.6, Volume: "温和"},
				{Month: "2025-10", Close: 3850.2, Change: 4.6, Volume: "放大"},
				{Month: "2025-11", Close: 4020.6, Change: 4.4, Volume: "活跃"},
				{Month: "2025-12", Close: 4180.3, Change: 4.0, Volume: "活跃"},
				{Month: "2026-01", Close: 4250.5, Change: 1.7, Volume: "活跃"},
			},
			QuarterlyData: []QuarterlyPoint{
				{Quarter: "2025-Q3", Close: 3680.8, Change: 5.7},
				{Quarter: "2025-Q4", Close: 4180.3, Change: 13.6},
				{Quarter: "2026-Q1", Close: 4250.5, Change: 1.7},
			},
		},
		TechnicalIndicators: TechnicalIndicators{
			MA20:              4200.5,
			MA60:              4080.3,
			MA120:             3850.2,
			Trend:             "多头排列",
			VolumeTrend:       "持续放大",
			AvgSixMonthChange: 22.1,
			Volatility:        "适中",
			NewHighSixMonth:   156,
			NewLowSixMonth:    12,
		},
		MacroEnvironment: MacroEnvironment{
			GDPForecast: "5.2%",
			CPI:         "1.8%",
			PPI:         "-2.1%",
			M2Growth:    "8.5%",
			PolicyTrend: "宽松适度",
		},
	}, nil
}
