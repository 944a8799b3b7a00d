package chart

import (
	"github.com/teranos/kpnadi/internal/util"
	"github.com/teranos/kpnadi/zodiac"
)

// HouseSystem selects how longitudes are placed into houses.
type HouseSystem string

const (
	// EqualHouses places houses in 30° buckets from cusp 1.
	EqualHouses HouseSystem = "equal"
	// CuspHouses uses the supplied cusp intervals.
	CuspHouses HouseSystem = "cusp"
)

// Houses locates longitudes in the twelve houses.
type Houses struct {
	System HouseSystem        `json:"system"`
	Cusps  [NumHouses]float64 `json:"cusps"`
}

// NewHouses builds a locator. Without explicit cusps, equal cusps are laid
// out from the ascendant.
func NewHouses(system HouseSystem, ascendant float64, cusps []float64) Houses {
	if system == "" {
		system = EqualHouses
	}
	h := Houses{System: system}
	for i := 0; i < NumHouses; i++ {
		if len(cusps) == NumHouses {
			h.Cusps[i] = util.NormalizeDegrees(cusps[i])
		} else {
			h.Cusps[i] = util.NormalizeDegrees(ascendant + float64(i)*zodiac.SignSpan)
		}
	}
	return h
}

// Cusp returns the longitude of house (1..12).
func (h Houses) Cusp(house int) float64 {
	return h.Cusps[(house-1+NumHouses)%NumHouses]
}

// HouseOf returns the house (1..12) containing the longitude.
func (h Houses) HouseOf(longitude float64) int {
	lon := util.NormalizeDegrees(longitude)
	if h.System == CuspHouses {
		for i := 0; i < NumHouses; i++ {
			start := h.Cusps[i]
			width := util.NormalizeDegrees(h.Cusps[(i+1)%NumHouses] - start)
			if util.NormalizeDegrees(lon-start) < width {
				return i + 1
			}
		}
	}
	offset := util.NormalizeDegrees(lon - h.Cusps[0])
	house := int(offset/zodiac.SignSpan) + 1
	if house > NumHouses {
		house = NumHouses
	}
	return house
}

// Nth returns the house n places from house, counting house itself as 1st.
func Nth(house, n int) int {
	return ((house-1)+(n-1))%NumHouses + 1
}
