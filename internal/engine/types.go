package engine

// Level is the value of one check-in dimension.
type Level string

const (
	LevelUnset Level = ""
	LevelLow   Level = "low"
	LevelOK    Level = "ok"
	LevelHigh  Level = "high"
)

// IsValid reports whether l is a settable check-in value. LevelUnset is not.
func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelOK, LevelHigh:
		return true
	default:
		return false
	}
}

func (l Level) String() string {
	if l == LevelUnset {
		return "unset"
	}
	return string(l)
}

// Next cycles unset -> low -> ok -> high -> low. Used by the board's toggle keys.
func (l Level) Next() Level {
	switch l {
	case LevelLow:
		return LevelOK
	case LevelOK:
		return LevelHigh
	default:
		return LevelLow
	}
}

type Dimension string

const (
	DimensionMood       Dimension = "mood"
	DimensionFocus      Dimension = "focus"
	DimensionConnection Dimension = "connection"
)

func (d Dimension) IsValid() bool {
	switch d {
	case DimensionMood, DimensionFocus, DimensionConnection:
		return true
	default:
		return false
	}
}

// Dimensions lists the check-in dimensions in display order.
var Dimensions = []Dimension{DimensionMood, DimensionFocus, DimensionConnection}

// Option is a duel choice.
type Option string

const (
	OptionNone Option = ""
	OptionA    Option = "a"
	OptionB    Option = "b"
)

func (o Option) IsValid() bool {
	return o == OptionA || o == OptionB
}

// House is a leaderboard team.
type House string

// Houses is the fixed roster. Its order is the leaderboard tie-break order.
var Houses = []House{
	"Arcanum",
	"Beacon",
	"Catalyst",
	"Dawn",
	"Ember",
	"Flux",
	"Glyph",
	"Harbor",
	"Ion",
	"Jade",
	"Kindred",
	"Lumina",
}

func (h House) IsValid() bool {
	return houseIndex(h) >= 0
}

func houseIndex(h House) int {
	for i, x := range Houses {
		if x == h {
			return i
		}
	}
	return -1
}

// Season is read-only flavor shown next to the progression bar.
type Season struct {
	Name     string
	Motto    string
	DaysLeft int
}

// CurrentSeason is the demo season.
var CurrentSeason = Season{Name: "Sagittarius", Motto: "Aim True", DaysLeft: 20}
