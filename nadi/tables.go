package nadi

import "sort"

// Event ids understood by the engine.
const (
	Education     = "education"
	Career        = "career"
	GovernmentJob = "government_job"
	Business      = "business"
	Marriage      = "marriage"
	ChildBirth    = "child_birth"
	Finance       = "finance"
	Property      = "property"
	Health        = "health"
	Travel        = "travel"
)

// HouseTable splits houses into good and bad for one event.
type HouseTable struct {
	Good []int `json:"good"`
	Bad  []int `json:"bad"`
}

var eventHouses = map[string]HouseTable{
	Education:     {Good: []int{4, 9, 11}, Bad: []int{3, 8, 12}},
	Career:        {Good: []int{2, 6, 10, 11}, Bad: []int{1, 5, 8, 12}},
	GovernmentJob: {Good: []int{6, 10, 11}, Bad: []int{5, 8, 12}},
	Business:      {Good: []int{2, 7, 10, 11}, Bad: []int{6, 8, 12}},
	Marriage:      {Good: []int{2, 7, 11}, Bad: []int{1, 6, 10}},
	ChildBirth:    {Good: []int{2, 5, 11}, Bad: []int{1, 4, 10}},
	Finance:       {Good: []int{2, 6, 11}, Bad: []int{5, 8, 12}},
	Property:      {Good: []int{4, 11, 12}, Bad: []int{3, 5, 8}},
	Health:        {Good: []int{1, 5, 11}, Bad: []int{6, 8, 12}},
	Travel:        {Good: []int{3, 9, 12}, Bad: []int{2, 4, 11}},
}

// growth/obstacle partition used for the left/right display split
var eventSplits = map[string]HouseTable{
	Education:     {Good: []int{2, 4, 9, 11}, Bad: []int{3, 6, 8, 12}},
	Career:        {Good: []int{2, 6, 10, 11}, Bad: []int{5, 8, 9, 12}},
	GovernmentJob: {Good: []int{1, 6, 10, 11}, Bad: []int{5, 8, 12}},
	Business:      {Good: []int{2, 3, 7, 10, 11}, Bad: []int{6, 8, 12}},
	Marriage:      {Good: []int{2, 5, 7, 11}, Bad: []int{1, 6, 10, 12}},
	ChildBirth:    {Good: []int{2, 5, 9, 11}, Bad: []int{1, 4, 8, 10, 12}},
	Finance:       {Good: []int{2, 5, 9, 11}, Bad: []int{6, 8, 12}},
	Property:      {Good: []int{2, 4, 9, 11}, Bad: []int{3, 6, 8, 12}},
	Health:        {Good: []int{1, 5, 9, 11}, Bad: []int{2, 6, 7, 8, 12}},
	Travel:        {Good: []int{3, 7, 9, 12}, Bad: []int{2, 4, 8, 11}},
}

// retrograde bodies additionally signify these houses
var retrogradeHouses = []int{2, 11}

// events whose strength gains a bonus when the body is retrograde
var retrogradeBonusEvents = map[string]bool{
	Finance:  true,
	Career:   true,
	Business: true,
}

// EventHouses returns the good/bad table of an event.
func EventHouses(event string) (HouseTable, bool) {
	t, ok := eventHouses[event]
	return t, ok
}

// Events returns the supported event ids, sorted.
func Events() []string {
	out := make([]string, 0, len(eventHouses))
	for id := range eventHouses {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
