package reports

import (
	"time"

	"hrportal/internal/domain/analytics"
)

type Stats struct {
	TotalEmployees     int `json:"totalEmployees"`
	ActiveEmployees    int `json:"activeEmployees"`
	Departments        int `json:"departments"`
	PendingLeave       int `json:"pendingLeave"`
	OnLeaveToday       int `json:"onLeaveToday"`
	OpenPostings       int `json:"openPostings"`
	UpcomingTraining   int `json:"upcomingTraining"`
	ActiveBenefitPlans int `json:"activeBenefitPlans"`
}

const (
	ActivityEmployee = "employee"
	ActivityLeave    = "leave"
	ActivityReview   = "review"
)

type Activity struct {
	Kind     string    `json:"kind"`
	EntityID string    `json:"entityId"`
	Title    string    `json:"title"`
	Label    string    `json:"label,omitempty"`
	At       time.Time `json:"at"`
}

type Turnover struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Separations    int       `json:"separations"`
	HeadcountStart int       `json:"headcountStart"`
	HeadcountEnd   int       `json:"headcountEnd"`
	Rate           float64   `json:"rate"`
}

type Chart struct {
	Series []analytics.Pair `json:"series"`
	Total  int              `json:"total"`
}

func newChart(series []analytics.Pair) Chart {
	total := 0
	for _, p := range series {
		total += p.Value
	}
	return Chart{Series: series, Total: total}
}
