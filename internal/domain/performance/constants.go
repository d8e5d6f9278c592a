package performance

const (
	MinRating = 1
	MaxRating = 5
)

// Categories lists the rating keys in the order they are displayed.
var Categories = []string{
	"jobKnowledge",
	"qualityOfWork",
	"productivity",
	"communication",
	"teamwork",
	"initiative",
	"reliability",
	"leadership",
}
