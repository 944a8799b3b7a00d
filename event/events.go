// Package event judges whether a chart promises a life event.
package event

import (
	"sort"

	"github.com/teranos/kpnadi/zodiac"
)

// Event names the houses that must be signified for an event to happen.
type Event struct {
	ID     string `json:"id"`
	Houses []int  `json:"houses"`
	// Cusp is the house whose sub lord decides the event.
	Cusp int `json:"cusp"`
}

var events = map[string]Event{
	"marriage":       {ID: "marriage", Houses: []int{2, 7, 11}, Cusp: 7},
	"career":         {ID: "career", Houses: []int{2, 6, 10, 11}, Cusp: 10},
	"business":       {ID: "business", Houses: []int{2, 7, 10, 11}, Cusp: 7},
	"children":       {ID: "children", Houses: []int{2, 5, 11}, Cusp: 5},
	"education":      {ID: "education", Houses: []int{4, 9, 11}, Cusp: 4},
	"higher_study":   {ID: "higher_study", Houses: []int{4, 9, 11, 12}, Cusp: 9},
	"property":       {ID: "property", Houses: []int{4, 11, 12}, Cusp: 4},
	"vehicle":        {ID: "vehicle", Houses: []int{4, 11}, Cusp: 4},
	"finance":        {ID: "finance", Houses: []int{2, 6, 11}, Cusp: 2},
	"foreign_travel": {ID: "foreign_travel", Houses: []int{3, 9, 12}, Cusp: 12},
	"health":         {ID: "health", Houses: []int{1, 5, 11}, Cusp: 1},
	"litigation":     {ID: "litigation", Houses: []int{6, 11}, Cusp: 6},
}

// karakas lists the natural significators consulted by the consolidated check.
var karakas = map[string][]zodiac.Body{
	"marriage":       {zodiac.Venus, zodiac.Jupiter},
	"career":         {zodiac.Saturn, zodiac.Sun, zodiac.Mercury},
	"business":       {zodiac.Mercury},
	"children":       {zodiac.Jupiter},
	"education":      {zodiac.Mercury, zodiac.Jupiter},
	"higher_study":   {zodiac.Jupiter, zodiac.Ketu},
	"property":       {zodiac.Mars, zodiac.Venus},
	"vehicle":        {zodiac.Venus},
	"finance":        {zodiac.Jupiter, zodiac.Venus},
	"foreign_travel": {zodiac.Rahu, zodiac.Moon},
	"health":         {zodiac.Sun, zodiac.Moon},
	"litigation":     {zodiac.Mars, zodiac.Saturn},
}

// Lookup returns the event definition for id.
func Lookup(id string) (Event, bool) {
	e, ok := events[id]
	return e, ok
}

// Karakas returns the karaka bodies of an event.
func Karakas(id string) []zodiac.Body {
	return karakas[id]
}

// IDs returns all known event ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(events))
	for id := range events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
