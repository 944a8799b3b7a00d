package report

import (
	"strings"

	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/zodiac"
)

// NakshatraTable lists the Sub spans of one nakshatra and, optionally, the
// Sub-Sub spans inside each Sub. It needs no chart.
type NakshatraTable struct {
	Nakshatra zodiac.Nakshatra `json:"nakshatra"`
	Subs      []SubRow         `json:"subs"`
}

// SubRow is one Sub span in absolute degrees.
type SubRow struct {
	Lord    zodiac.Body      `json:"lord"`
	Start   float64          `json:"start"`
	End     float64          `json:"end"`
	SubSubs []zodiac.Portion `json:"sub_subs,omitempty"`
}

// NewNakshatraTable builds the table for the named nakshatra.
func NewNakshatraTable(name string, expand bool) (NakshatraTable, error) {
	nk, err := zodiac.FindNakshatra(name)
	if err != nil {
		names := make([]string, 0, zodiac.NumNakshatras)
		for _, n := range zodiac.Nakshatras {
			names = append(names, n.Name)
		}
		return NakshatraTable{}, errors.WithHintf(err, "known nakshatras: %s", strings.Join(names, ", "))
	}

	t := NakshatraTable{Nakshatra: nk, Subs: make([]SubRow, 0, zodiac.NumBodies)}
	for _, sub := range zodiac.SubTable(nk) {
		row := SubRow{Lord: sub.Lord, Start: sub.Start, End: sub.End}
		if expand {
			subSubs := zodiac.SubSubTable(sub)
			row.SubSubs = subSubs[:]
		}
		t.Subs = append(t.Subs, row)
	}
	return t, nil
}
