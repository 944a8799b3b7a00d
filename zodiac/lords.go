package zodiac

import "github.com/teranos/kpnadi/internal/util"

// Lords is the nested rulership of a single longitude.
type Lords struct {
	Longitude  float64 `json:"longitude"`
	Sign       Sign    `json:"sign"`
	SignLord   Body    `json:"sign_lord"`
	Nakshatra  string  `json:"nakshatra"`
	Pada       int     `json:"pada"`
	StarLord   Body    `json:"star_lord"`
	SubLord    Body    `json:"sub_lord"`
	SubSubLord Body    `json:"sub_sub_lord"`

	// PositionInSegment is the offset into the nakshatra, in degrees.
	PositionInSegment float64 `json:"position_in_segment"`
	// ResidualMinutes is the offset into the Sub span, in arc minutes.
	ResidualMinutes float64 `json:"residual_minutes"`
}

// Resolve computes the Star, Sub and Sub-Sub lords of a longitude.
//
// Any real input is accepted; it is normalized modulo 360 first. Bucket
// boundaries belong to the later bucket. If float rounding leaves the
// position outside every bucket, the level falls back to its parent's lord.
func Resolve(longitude float64) Lords {
	lon := util.NormalizeDegrees(longitude)
	nk := NakshatraAt(lon)
	pos := lon - nk.Start

	pada := int(pos/PadaSpan) + 1
	if pada > 4 {
		pada = 4
	}

	posMinutes := pos * 60

	sub, ok := Locate(nk.Lord, 0, NakshatraMinutes, posMinutes)
	if !ok {
		sub = Portion{Lord: nk.Lord, Start: 0, End: NakshatraMinutes}
	}

	subSubLord := sub.Lord
	if subSub, ok := Locate(sub.Lord, sub.Start, sub.Span(), posMinutes); ok {
		subSubLord = subSub.Lord
	}

	sign := SignOf(lon)
	return Lords{
		Longitude:         lon,
		Sign:              sign,
		SignLord:          sign.Lord(),
		Nakshatra:         nk.Name,
		Pada:              pada,
		StarLord:          nk.Lord,
		SubLord:           sub.Lord,
		SubSubLord:        subSubLord,
		PositionInSegment: pos,
		ResidualMinutes:   posMinutes - sub.Start,
	}
}

// SubTable lists the nine Sub spans of a nakshatra in absolute degrees.
// The last Sub ends exactly at nk.End.
func SubTable(nk Nakshatra) [NumBodies]Portion {
	subs := Subdivide(nk.Lord, nk.Start, nk.End-nk.Start)
	subs[NumBodies-1].End = nk.End
	return subs
}

// SubSubTable lists the nine Sub-Sub spans of one Sub span, in absolute degrees.
// The last Sub-Sub ends exactly at sub.End.
func SubSubTable(sub Portion) [NumBodies]Portion {
	subSubs := Subdivide(sub.Lord, sub.Start, sub.Span())
	subSubs[NumBodies-1].End = sub.End
	return subSubs
}
