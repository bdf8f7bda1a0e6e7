package engine

// CheckInXP is granted once when the check-in is finalized.
const CheckInXP = 25

// CheckIn is a snapshot of the three check-in dimensions.
type CheckIn struct {
	Mood       Level
	Focus      Level
	Connection Level
	Awarded    bool
}

func (c CheckIn) IsComplete() bool {
	return c.Mood != LevelUnset && c.Focus != LevelUnset && c.Connection != LevelUnset
}

func (c CheckIn) Get(d Dimension) Level {
	switch d {
	case DimensionMood:
		return c.Mood
	case DimensionFocus:
		return c.Focus
	case DimensionConnection:
		return c.Connection
	default:
		return LevelUnset
	}
}

// CheckInFlow collects the dimensions until the check-in is awarded.
type CheckInFlow struct {
	state CheckIn
}

func NewCheckInFlow() *CheckInFlow { return &CheckInFlow{} }

// Set overwrites one dimension. It reports false once the check-in has been
// awarded, or for an invalid dimension or value.
func (f *CheckInFlow) Set(d Dimension, v Level) bool {
	if f.state.Awarded || !d.IsValid() || !v.IsValid() {
		return false
	}
	switch d {
	case DimensionMood:
		if f.state.Mood == v {
			return false
		}
		f.state.Mood = v
	case DimensionFocus:
		if f.state.Focus == v {
			return false
		}
		f.state.Focus = v
	case DimensionConnection:
		if f.state.Connection == v {
			return false
		}
		f.state.Connection = v
	}
	return true
}

func (f *CheckInFlow) IsComplete() bool { return f.state.IsComplete() }

// CanFinalize is true when every dimension is set and no reward was issued yet.
func (f *CheckInFlow) CanFinalize() bool {
	return f.state.IsComplete() && !f.state.Awarded
}

func (f *CheckInFlow) markAwarded() { f.state.Awarded = true }

func (f *CheckInFlow) Snapshot() CheckIn { return f.state }
