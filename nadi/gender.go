package nadi

import "github.com/teranos/kpnadi/zodiac"

// DetermineGender is Male or Female only when the body and the sign it
// occupies agree; any disagreement or dual body gives Dual.
func DetermineGender(b zodiac.Body, s zodiac.Sign) zodiac.Gender {
	bg := b.Gender()
	if bg == s.Gender() {
		return bg
	}
	return zodiac.Dual
}
