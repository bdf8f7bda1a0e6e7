package engine

// Guidance tags, in priority order.
const (
	TagRideConfidence = "Ride confidence early."
	TagTinyWin        = "Set a tiny win before noon."
	TagDeepWork       = "Deep work block: 45–60 min."
	TagFriendCheckIn  = "Send a 2-line check-in to a friend."
	TagLightTouch     = "Light touch today. One meaningful action > many half-starts."
)

// MaxGuidanceTags caps the brief length.
const MaxGuidanceTags = 3

// DeriveGuidance builds the advisory brief for a check-in. It is pure: the
// same inputs always yield the same tags.
func DeriveGuidance(mood, focus, connection Level) []string {
	tags := make([]string, 0, MaxGuidanceTags)
	if mood == LevelHigh {
		tags = append(tags, TagRideConfidence)
	}
	if mood == LevelLow {
		tags = append(tags, TagTinyWin)
	}
	if focus == LevelHigh {
		tags = append(tags, TagDeepWork)
	}
	if connection == LevelHigh {
		tags = append(tags, TagFriendCheckIn)
	}
	if len(tags) == 0 {
		tags = append(tags, TagLightTouch)
	}
	if len(tags) > MaxGuidanceTags {
		tags = tags[:MaxGuidanceTags]
	}
	return tags
}
