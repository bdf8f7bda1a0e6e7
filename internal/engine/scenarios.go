package engine

// DuelScenario is the flavor text for one decision duel.
type DuelScenario struct {
	ID      string
	Title   string
	OptionA string
	OptionB string
	Tip     string
}

func builtinScenarios() []DuelScenario {
	return []DuelScenario{
		{
			ID:      "work_pitch",
			Title:   "Your morning has a bold edge. Pitch now or prep more?",
			OptionA: "Pitch now (ride momentum)",
			OptionB: "Prep more (send tomorrow)",
			Tip:     "Mars-Mercury vibes favor decisive starts; keep it concise.",
		},
		{
			ID:      "date_text",
			Title:   "Thinking about texting someone new: go playful or direct?",
			OptionA: "Playful opener",
			OptionB: "Direct invite",
			Tip:     "Venus in a curious angle rewards warmth + clarity in two beats.",
		},
		{
			ID:      "fitness",
			Title:   "Energy window appears late afternoon: lift or long walk?",
			OptionA: "Short, heavy lift",
			OptionB: "45-min walk + stretch",
			Tip:     "Pick what you'll celebrate finishing. Consistency > intensity.",
		},
	}
}

// Scenarios returns the scenario pool.
func Scenarios() []DuelScenario { return builtinScenarios() }

// PickScenario draws one scenario from the pool.
func PickScenario(src RandSource) DuelScenario {
	pool := builtinScenarios()
	return pool[src.Intn(len(pool))]
}
