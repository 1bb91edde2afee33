package hourly

// Dataset describes one chart series in the dashboard's combo chart.
type Dataset struct {
	Label           string    `json:"label"`
	Type            string    `json:"type"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
	BorderDash      []int     `json:"borderDash,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	Order           int       `json:"order"`
}

const (
	DatasetActual     = "Hourly Output"
	DatasetCumulative = "Cumulative"
	DatasetTarget     = "Target"
)

// ChartSeries maps a result onto the bar/line datasets: actual as bars,
// cumulative as a solid line and target as a dashed line.
func ChartSeries(r *Result) []Dataset {
	if r == nil {
		return nil
	}
	return []Dataset{
		{
			Label:           DatasetActual,
			Type:            "bar",
			Data:            r.Actual,
			BackgroundColor: "#36b9cc",
			BorderColor:     "#117a8b",
			BorderWidth:     1,
			Order:           2,
		},
		{
			Label:           DatasetCumulative,
			Type:            "line",
			Data:            r.Cumulative,
			BackgroundColor: "transparent",
			BorderColor:     "#e74c3c",
			BorderWidth:     2,
			Tension:         0.2,
			Order:           1,
		},
		{
			Label:           DatasetTarget,
			Type:            "line",
			Data:            r.Target,
			BackgroundColor: "transparent",
			BorderColor:     "#27ae60",
			BorderWidth:     2,
			BorderDash:      []int{5, 5},
			Tension:         0.2,
			Order:           0,
		},
	}
}
