package stats

// Recommendation tiers keyed off today's mood level. Selection is
// deterministic and capped at three items; when no tier matches, or no mood
// was logged today, the generic tier applies so the result is never empty.

const maxRecommendations = 3

var lowTier = []string{
	"Consider reaching out to a trusted friend or family member",
	"Try some deep breathing exercises or meditation",
	"Take a short walk outside if possible",
	"Consider speaking with a mental health professional",
}

var midTier = []string{
	"Try journaling about your feelings",
	"Listen to some uplifting music",
	"Practice gratitude by listing three things you're thankful for",
	"Consider doing some light exercise",
}

var highTier = []string{
	"Great mood! Consider sharing your positivity with others",
	"This is a good time to tackle challenging tasks",
	"Reflect on what's contributing to your good mood",
	"Consider planning something fun for the future",
}

var genericTier = []string{
	"Remember to practice self-care",
	"Stay connected with loved ones",
	"Maintain a regular sleep schedule",
	"Consider keeping a daily mood journal",
}

// Recommendations picks up to three suggestions for today's mood. todayLevel
// is nil when no mood was logged today. recent is accepted for future
// trend-aware tiers; the current rules only consult today's level.
func Recommendations(todayLevel *int, recent []int) []string {
	_ = recent

	tier := genericTier
	if todayLevel != nil {
		switch {
		case *todayLevel <= 3:
			tier = lowTier
		case *todayLevel <= 5:
			tier = midTier
		case *todayLevel >= 8:
			tier = highTier
		}
	}

	out := make([]string, maxRecommendations)
	copy(out, tier[:maxRecommendations])
	return out
}

var descriptions = map[int]string{
	1:  "Terrible",
	2:  "Very Bad",
	3:  "Bad",
	4:  "Poor",
	5:  "Okay",
	6:  "Fair",
	7:  "Good",
	8:  "Very Good",
	9:  "Great",
	10: "Excellent",
}

// Describe maps a mood level to its display label.
func Describe(level int) string {
	if d, ok := descriptions[level]; ok {
		return d
	}
	return "Unknown"
}
