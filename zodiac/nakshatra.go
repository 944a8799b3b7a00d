package zodiac

import (
	"strings"

	"github.com/teranos/kpnadi/errors"
)

const (
	// NumNakshatras is the number of segments tiling the zodiac.
	NumNakshatras = 27

	// NakshatraSpan is the width of one segment: 13°20′.
	NakshatraSpan = 360.0 / NumNakshatras

	// NakshatraMinutes is the width of one segment in arc minutes.
	NakshatraMinutes = 800.0

	// PadaSpan is a quarter of a segment: 3°20′.
	PadaSpan = NakshatraSpan / 4
)

// Nakshatra is one of the 27 fixed segments.
type Nakshatra struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Lord  Body    `json:"lord"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

var nakshatraNames = [NumNakshatras]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// Nakshatras is the fixed segment table, built once at start-up.
var Nakshatras = buildNakshatras()

func buildNakshatras() [NumNakshatras]Nakshatra {
	var table [NumNakshatras]Nakshatra
	for i := range table {
		table[i] = Nakshatra{
			Index: i,
			Name:  nakshatraNames[i],
			Lord:  SubSequence[i%NumBodies],
			Start: float64(i) * NakshatraSpan,
			End:   float64(i+1) * NakshatraSpan,
		}
	}
	return table
}

// NakshatraAt returns the segment containing a normalized longitude.
func NakshatraAt(longitude float64) Nakshatra {
	idx := int(longitude / NakshatraSpan)
	if idx >= NumNakshatras {
		idx = NumNakshatras - 1
	}
	if idx < 0 {
		idx = 0
	}
	return Nakshatras[idx]
}

// FindNakshatra looks a segment up by name.
func FindNakshatra(name string) (Nakshatra, error) {
	n := strings.TrimSpace(name)
	for _, nk := range Nakshatras {
		if strings.EqualFold(nk.Name, n) {
			return nk, nil
		}
	}
	return Nakshatra{}, errors.NewInvalidDomainValueError("unknown nakshatra %q", name)
}
