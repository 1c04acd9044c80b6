package recruiting

import (
	"math"
	"sort"
	"strconv"
)

const (
	BadgeExcellent = "Excellent"
	BadgeGood      = "Good"
	BadgeFair      = "Fair"
	BadgeLow       = "Low"
	BadgeUnscored  = "Unscored"
)

// Score is a 0-100 match score computed by the recruiting API. A missing
// score stays unscored; it is never substituted locally.
type Score struct {
	Value  int
	Scored bool
}

func NewScore(v float64) Score {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Score{}
	}
	n := int(math.Round(v))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return Score{Value: n, Scored: true}
}

func (s Score) Badge() string {
	switch {
	case !s.Scored:
		return BadgeUnscored
	case s.Value >= 90:
		return BadgeExcellent
	case s.Value >= 80:
		return BadgeGood
	case s.Value >= 70:
		return BadgeFair
	default:
		return BadgeLow
	}
}

func (s Score) String() string {
	if !s.Scored {
		return BadgeUnscored
	}
	return strconv.Itoa(s.Value) + "%"
}

// RankByScore returns a copy ordered by descending score. Unscored applicants
// go last and ties keep their input order.
func RankByScore(in []Applicant) []Applicant {
	out := make([]Applicant, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Score, out[j].Score
		if a.Scored != b.Scored {
			return a.Scored
		}
		return a.Value > b.Value
	})
	return out
}

// TopN ranks applicants and keeps at most n of them.
func TopN(in []Applicant, n int) []Applicant {
	if n <= 0 {
		return []Applicant{}
	}
	ranked := RankByScore(in)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
