package zodiac

import (
	"strings"

	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/internal/util"
)

// Sign is one of the twelve 30° signs, Aries first.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// NumSigns is the number of signs.
const NumSigns = 12

// SignSpan is the width of one sign in degrees.
const SignSpan = 30.0

var signNames = [NumSigns]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLords = [NumSigns]Body{
	Aries:       Mars,
	Taurus:      Venus,
	Gemini:      Mercury,
	Cancer:      Moon,
	Leo:         Sun,
	Virgo:       Mercury,
	Libra:       Venus,
	Scorpio:     Mars,
	Sagittarius: Jupiter,
	Capricorn:   Saturn,
	Aquarius:    Saturn,
	Pisces:      Jupiter,
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// Lord returns the sign's fixed ruling body.
func (s Sign) Lord() Body {
	return signLords[s]
}

// Add rotates the sign forward by n signs.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%NumSigns + NumSigns) % NumSigns)
}

// Gender returns the sign's fixed gender: odd signs (Aries, Gemini, ...) are male.
func (s Sign) Gender() Gender {
	if s%2 == 0 {
		return Male
	}
	return Female
}

// MarshalText renders the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SignOf returns the sign containing the longitude.
func SignOf(longitude float64) Sign {
	idx := int(util.NormalizeDegrees(longitude) / SignSpan)
	if idx >= NumSigns {
		idx = NumSigns - 1
	}
	return Sign(idx)
}

// SignLord returns the ruler of the sign containing the longitude.
func SignLord(longitude float64) Body {
	return SignOf(longitude).Lord()
}

// ParseSign resolves a case-insensitive sign name.
func ParseSign(name string) (Sign, error) {
	n := strings.TrimSpace(name)
	for i, candidate := range signNames {
		if strings.EqualFold(candidate, n) {
			return Sign(i), nil
		}
	}
	return 0, errors.NewInvalidDomainValueError("unknown sign %q", name)
}
