package nadi

// Status is the verdict of one house set against an event table.
type Status string

const (
	StatusGood    Status = "GOOD"
	StatusNeutral Status = "NEUTRAL"
	StatusBad     Status = "BAD"
)

// score returns the weight of a status in the display percentage.
func (s Status) score() float64 {
	switch s {
	case StatusGood:
		return 100
	case StatusNeutral:
		return 50
	default:
		return 0
	}
}

// Evaluate compares how many of the houses fall in the good and bad lists.
func Evaluate(houses []int, table HouseTable) Status {
	good := intersect(houses, table.Good)
	bad := intersect(houses, table.Bad)
	switch {
	case len(good) > len(bad):
		return StatusGood
	case len(bad) > len(good):
		return StatusBad
	default:
		return StatusNeutral
	}
}

// Rating is the success grade of a (star lord, sub lord) status pair.
type Rating string

const (
	RatingExcellent Rating = "E"
	RatingHigh      Rating = "H"
	RatingMixed     Rating = "M"
	RatingLow       Rating = "L"
	RatingBad       Rating = "B"
	RatingVeryBad   Rating = "VB"
)

var ratingTable = map[Status]map[Status]Rating{
	StatusGood: {
		StatusGood:    RatingExcellent,
		StatusNeutral: RatingHigh,
		StatusBad:     RatingBad,
	},
	StatusNeutral: {
		StatusGood:    RatingHigh,
		StatusNeutral: RatingMixed,
		StatusBad:     RatingBad,
	},
	StatusBad: {
		StatusGood:    RatingMixed,
		StatusNeutral: RatingLow,
		StatusBad:     RatingVeryBad,
	},
}

var ratingStrength = map[Rating]int{
	RatingExcellent: 95,
	RatingHigh:      80,
	RatingMixed:     60,
	RatingLow:       40,
	RatingBad:       20,
	RatingVeryBad:   5,
}

// MaxStrength caps the retrograde bonus.
const MaxStrength = 95

// RetrogradeBonus is added to finance, career and business strengths.
const RetrogradeBonus = 5

// SuccessRating looks up the rating for a star lord and sub lord status.
func SuccessRating(nl, sl Status) Rating {
	return ratingTable[nl][sl]
}

// Strength returns the numeric strength of a rating.
func (r Rating) Strength() int {
	return ratingStrength[r]
}

// Label is the long name of a rating.
func (r Rating) Label() string {
	switch r {
	case RatingExcellent:
		return "Excellent"
	case RatingHigh:
		return "High"
	case RatingMixed:
		return "Mixed"
	case RatingLow:
		return "Low"
	case RatingBad:
		return "Bad"
	case RatingVeryBad:
		return "Very Bad"
	default:
		return string(r)
	}
}

// Verdict is the yes/no answer derived from a rating.
type Verdict string

const (
	VerdictYes     Verdict = "YES"
	VerdictNo      Verdict = "NO"
	VerdictMixed   Verdict = "MIXED"
	VerdictUnknown Verdict = "UNKNOWN" // event without a house table
)

// VerdictOf maps E/H to YES, B/VB to NO and the rest to MIXED.
func VerdictOf(r Rating) Verdict {
	switch r {
	case RatingExcellent, RatingHigh:
		return VerdictYes
	case RatingBad, RatingVeryBad:
		return VerdictNo
	default:
		return VerdictMixed
	}
}

// downgrade applies the missing-royal-link penalty for government jobs.
func downgrade(r Rating) Rating {
	switch r {
	case RatingExcellent, RatingHigh:
		return RatingMixed
	case RatingMixed:
		return RatingLow
	default:
		return r
	}
}

// Percentage weighs the three statuses 20/30/50 for display.
func Percentage(pl, nl, sl Status) float64 {
	return 0.2*pl.score() + 0.3*nl.score() + 0.5*sl.score()
}

// Split partitions a house set into growth and obstacle houses.
type Split struct {
	Left    []int `json:"left"`
	Right   []int `json:"right"`
	Neutral []int `json:"neutral"`
}

// SplitHouses partitions houses with the event's growth/obstacle table.
func SplitHouses(event string, houses []int) Split {
	t := eventSplits[event]
	s := Split{Left: []int{}, Right: []int{}, Neutral: []int{}}
	for _, h := range houses {
		switch {
		case containsInt(t.Good, h):
			s.Left = append(s.Left, h)
		case containsInt(t.Bad, h):
			s.Right = append(s.Right, h)
		default:
			s.Neutral = append(s.Neutral, h)
		}
	}
	return s
}

func intersect(a, b []int) []int {
	var out []int
	for _, x := range a {
		if containsInt(b, x) {
			out = append(out, x)
		}
	}
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
