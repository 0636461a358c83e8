package market

import "time"

// Condition classifies the overall trend of the A-share market. The
// recommendation engine keys its strategy templates on this value.
type Condition string

const (
	Bull   Condition = "牛市"
	Choppy Condition = "震荡市"
	Bear   Condition = "熊市"
)

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	switch c {
	case Bull, Choppy, Bear:
		return true
	}
	return false
}

// Analysis is the classifier verdict for a snapshot.
type Analysis struct {
	Condition  Condition `json:"condition"`
	Reason     string    `json:"reason"`
	Confidence string    `json:"confidence"`
}

// MonthlyPoint is one month of index history.
type MonthlyPoint struct {
	Month  string  `json:"month"`
	Close  float64 `json:"close"`
	Change float64 `json:"change"`
	Volume string  `json:"volume"`
}

// QuarterlyPoint is one quarter of index history.
type QuarterlyPoint struct {
	Quarter string  `json:"quarter"`
	Close   float64 `json:"close"`
	Change  float64 `json:"change"`
}

// IndexData holds the CSI 300 index block of a snapshot.
type IndexData struct {
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	Current       float64          `json:"current"`
	SixMonthsAgo  float64          `json:"sixMonthsAgo"`
	Change        float64          `json:"change"`
	MonthlyData   []MonthlyPoint   `json:"monthlyData"`
	QuarterlyData []QuarterlyPoint `json:"quarterlyData"`
}

// TechnicalIndicators carries momentum and breadth readings for a snapshot.
type TechnicalIndicators struct {
	MA20              float64 `json:"ma20"`
	MA60              float64 `json:"ma60"`
	MA120             float64 `json:"ma120"`
	Trend             string  `json:"trend"`
	VolumeTrend       string  `json:"volumeTrend"`
	AvgSixMonthChange float64 `json:"avgSixMonthChange"`
	Volatility        string  `json:"volatility"`
	NewHighSixMonth   int     `json:"newHighSixMonth"`
	NewLowSixMonth    int     `json:"newLowSixMonth"`
}

// MacroEnvironment carries the macro backdrop of a snapshot.
type MacroEnvironment struct {
	GDPForecast string `json:"gdpForecast"`
	CPI         string `json:"cpi"`
	PPI         string `json:"ppi"`
	M2Growth    string `json:"m2Growth"`
	PolicyTrend string `json:"policyTrend"`
}

// Snapshot is an immutable market data point produced by a Source.
type Snapshot struct {
	Date                string              `json:"date"`
	CS300Index          IndexData           `json:"cs300Index"`
	TechnicalIndicators TechnicalIndicators `json:"technicalIndicators"`
	MacroEnvironment    MacroEnvironment    `json:"macroEnvironment"`
}

// State is the resolved market view handed to the recommendation flow.
// The service starts pending; once a fetch succeeds or the fallback
// kicks in, Resolved is true and Condition never reverts to pending.
type State struct {
	Resolved    bool
	Condition   Condition
	Reason      string
	Change      float64
	LastUpdated time.Time
}
