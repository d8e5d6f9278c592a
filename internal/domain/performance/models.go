package performance

import "time"

// Ratings holds one 1-5 score per review category.
type Ratings struct {
	JobKnowledge  int `json:"jobKnowledge" validate:"required,min=1,max=5" label:"Job knowledge rating"`
	QualityOfWork int `json:"qualityOfWork" validate:"required,min=1,max=5" label:"Quality of work rating"`
	Productivity  int `json:"productivity" validate:"required,min=1,max=5" label:"Productivity rating"`
	Communication int `json:"communication" validate:"required,min=1,max=5" label:"Communication rating"`
	Teamwork      int `json:"teamwork" validate:"required,min=1,max=5" label:"Teamwork rating"`
	Initiative    int `json:"initiative" validate:"required,min=1,max=5" label:"Initiative rating"`
	Reliability   int `json:"reliability" validate:"required,min=1,max=5" label:"Reliability rating"`
	Leadership    int `json:"leadership" validate:"required,min=1,max=5" label:"Leadership rating"`
}

// Values returns the scores in Categories order.
func (r Ratings) Values() []int {
	return []int{r.JobKnowledge, r.QualityOfWork, r.Productivity, r.Communication, r.Teamwork, r.Initiative, r.Reliability, r.Leadership}
}

type Review struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	ReviewerID   string    `json:"reviewerId"`
	ReviewPeriod string    `json:"reviewPeriod"`
	ReviewDate   time.Time `json:"reviewDate"`
	Ratings      Ratings   `json:"ratings"`
	Rating       float64   `json:"rating"`
	Strengths    string    `json:"strengths,omitempty"`
	Improvements string    `json:"improvements,omitempty"`
	Goals        string    `json:"goals,omitempty"`
	Comments     string    `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewInput struct {
	EmployeeID   string    `json:"employeeId" validate:"required,uuid" label:"Employee"`
	ReviewerID   string    `json:"reviewerId" validate:"required,uuid" label:"Reviewer"`
	ReviewPeriod string    `json:"reviewPeriod" validate:"required,max=50" label:"Review period"`
	ReviewDate   time.Time `json:"reviewDate" validate:"required" label:"Review date"`
	Ratings      Ratings   `json:"ratings"`
	Strengths    string    `json:"strengths"`
	Improvements string    `json:"improvements"`
	Goals        string    `json:"goals"`
	Comments     string    `json:"comments"`
}

type ReviewFilter struct {
	EmployeeID string
	ReviewerID string
	Limit      int
	Offset     int
}
