package nadi

// MaxSuggestions bounds the suggestion list.
const MaxSuggestions = 10

type suggestionRule struct {
	houses []int
	fields []string
}

var careerRules = []suggestionRule{
	{[]int{1, 10}, []string{"Entrepreneurship", "Leadership roles"}},
	{[]int{10, 11}, []string{"Administration", "Management"}},
	{[]int{2, 6, 10}, []string{"Salaried service"}},
	{[]int{2, 7, 10, 11}, []string{"Business and trade"}},
	{[]int{2, 11}, []string{"Banking", "Finance"}},
	{[]int{3, 10}, []string{"Sales and marketing", "Communications"}},
	{[]int{3, 9}, []string{"Media", "Publishing", "Travel industry"}},
	{[]int{5, 9}, []string{"Teaching", "Advisory"}},
	{[]int{4, 10}, []string{"Real estate", "Agriculture"}},
	{[]int{6, 12}, []string{"Healthcare", "Hospitals"}},
	{[]int{7, 11}, []string{"Consulting", "Partnerships"}},
	{[]int{8, 12}, []string{"Research", "Insurance"}},
	{[]int{9, 12}, []string{"Foreign service", "Overseas employment"}},
}

var educationRules = []suggestionRule{
	{[]int{4, 9, 11}, []string{"Degree completion"}},
	{[]int{4, 9}, []string{"Higher education"}},
	{[]int{4, 12}, []string{"Study abroad"}},
	{[]int{3, 5}, []string{"Languages", "Journalism"}},
	{[]int{5, 9}, []string{"Humanities", "Law"}},
	{[]int{5, 11}, []string{"Fine arts"}},
	{[]int{6, 10}, []string{"Engineering", "Technical courses"}},
	{[]int{2, 11}, []string{"Commerce", "Accountancy"}},
	{[]int{6, 12}, []string{"Medicine"}},
	{[]int{8, 12}, []string{"Research", "Occult sciences"}},
	{[]int{4, 11}, []string{"Professional courses"}},
}

// Suggest collects fields whose house subset is contained in any of the given
// house sets. The result is deduplicated, in rule order, at most
// MaxSuggestions long. Events other than career and education yield nothing.
func Suggest(event string, houseSets ...[]int) []string {
	var rules []suggestionRule
	switch event {
	case Career, GovernmentJob, Business:
		rules = careerRules
	case Education:
		rules = educationRules
	default:
		return []string{}
	}

	out := []string{}
	seen := map[string]bool{}
	for _, houses := range houseSets {
		for _, r := range rules {
			if !subset(r.houses, houses) {
				continue
			}
			for _, f := range r.fields {
				if seen[f] {
					continue
				}
				seen[f] = true
				out = append(out, f)
				if len(out) == MaxSuggestions {
					return out
				}
			}
		}
	}
	return out
}

func subset(sub, set []int) bool {
	for _, h := range sub {
		if !containsInt(set, h) {
			return false
		}
	}
	return true
}
