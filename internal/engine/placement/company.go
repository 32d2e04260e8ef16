package placement

import (
	"fmt"
	"strings"
)

// CompanySize drives which interview funnel is generated.
type CompanySize string

const (
	SizeEnterprise CompanySize = "Enterprise"
	SizeStartup    CompanySize = "Startup"
)

const (
	defaultIndustry = "Technology Services"
	genericFocus    = "Fundamentals and problem solving; adapt once the company is known."
)

// CompanyIntel is a heuristic profile derived only from the company name.
type CompanyIntel struct {
	Name        string      `json:"name"`
	Industry    string      `json:"industry"`
	Size        CompanySize `json:"size"`
	SizeLabel   string      `json:"sizeLabel"`
	HiringFocus string      `json:"hiringFocus"`
}

// RoundInfo describes one expected interview round.
type RoundInfo struct {
	RoundTitle   string   `json:"roundTitle"`
	FocusAreas   []string `json:"focusAreas"`
	WhyItMatters string   `json:"whyItMatters"`
}

// ClassifyCompany returns Enterprise when the name contains a known large
// employer fragment, Startup otherwise (including for an empty name).
func ClassifyCompany(name string) CompanySize {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return SizeStartup
	}
	for _, frag := range cat.enterprise {
		if frag != "" && strings.Contains(lower, frag) {
			return SizeEnterprise
		}
	}
	return SizeStartup
}

// CompanyIntelFor builds the company profile shown next to an analysis.
func CompanyIntelFor(name string) CompanyIntel {
	name = strings.TrimSpace(name)
	size := ClassifyCompany(name)
	intel := CompanyIntel{
		Name:     name,
		Industry: inferIndustry(name),
		Size:     size,
	}
	switch {
	case name == "":
		intel.SizeLabel = "Startup (<200)"
		intel.HiringFocus = genericFocus
	case size == SizeEnterprise:
		intel.SizeLabel = "Enterprise (2000+)"
		intel.HiringFocus = "Structured DSA rounds and core CS fundamentals; consistency across standardized interviews."
	default:
		intel.SizeLabel = "Startup (<200)"
		intel.HiringFocus = "Practical problem solving and stack depth; ability to ship features end to end."
	}
	return intel
}

func inferIndustry(name string) string {
	lower := strings.ToLower(name)
	if lower == "" {
		return defaultIndustry
	}
	for _, ind := range cat.industries {
		for _, frag := range ind.Fragments {
			if strings.Contains(lower, strings.ToLower(frag)) {
				return ind.Industry
			}
		}
	}
	return defaultIndustry
}

// GenerateRoundMapping emits the interview funnel for a company size.
// Enterprise: online test, two technical rounds, HR. Startup: assignment,
// live coding, an optional stack discussion, founder round.
func GenerateRoundMapping(size CompanySize, s Skills) []RoundInfo {
	if size == SizeEnterprise {
		return enterpriseRounds(s)
	}
	return startupRounds(s)
}

func enterpriseRounds(s Skills) []RoundInfo {
	r1 := RoundInfo{
		RoundTitle:   "Round 1: Online Test",
		FocusAreas:   []string{"Aptitude", "DSA basics"},
		WhyItMatters: "Filters large applicant pools quickly; accuracy and speed both count.",
	}
	r2 := RoundInfo{
		RoundTitle:   "Round 2: Technical (DSA + Core CS)",
		FocusAreas:   []string{"Data structures", "Algorithms"},
		WhyItMatters: "Checks fundamentals that are standardized across teams.",
	}
	if s.Has(CategoryCoreCS) {
		r2.FocusAreas = append(r2.FocusAreas, s[CategoryCoreCS]...)
	} else {
		r2.FocusAreas = append(r2.FocusAreas, "OOP", "DBMS", "OS")
	}
	r3 := RoundInfo{
		RoundTitle:   "Round 3: Technical (Projects + Stack)",
		FocusAreas:   append([]string{"Project deep-dive"}, stackFocus(s)...),
		WhyItMatters: "Shows you can apply fundamentals to the stack the team uses.",
	}
	r4 := RoundInfo{
		RoundTitle:   "Round 4: HR",
		FocusAreas:   []string{"Behavioral questions", "Culture fit", "Expectations"},
		WhyItMatters: "Confirms communication and long-term fit.",
	}
	return []RoundInfo{r1, r2, r3, r4}
}

func startupRounds(s Skills) []RoundInfo {
	rounds := []RoundInfo{
		{
			RoundTitle:   "Round 1: Practical Assignment",
			FocusAreas:   append([]string{"Take-home task"}, stackFocus(s)...),
			WhyItMatters: "Startups need people who can build working features early.",
		},
		{
			RoundTitle:   "Round 2: Live Coding",
			FocusAreas:   []string{"Problem solving", "Code clarity", "Debugging"},
			WhyItMatters: "Shows how you think and communicate under time pressure.",
		},
	}
	if !s.IsFallbackOnly() {
		areas := []string{"Architecture of your project"}
		if s.Has(CategoryData) {
			areas = append(areas, "Data modeling")
		}
		if s.Has(CategoryCloud) {
			areas = append(areas, "Deployment")
		}
		rounds = append(rounds, RoundInfo{
			RoundTitle:   "Round 3: System Discussion",
			FocusAreas:   areas,
			WhyItMatters: "Small teams expect ownership beyond a single ticket.",
		})
	}
	rounds = append(rounds, RoundInfo{
		RoundTitle:   fmt.Sprintf("Round %d: Founder / Culture Fit", len(rounds)+1),
		FocusAreas:   []string{"Motivation", "Ownership", "Learning speed"},
		WhyItMatters: "Founders hire for attitude as much as skill in early teams.",
	})
	return rounds
}

func stackFocus(s Skills) []string {
	var out []string
	for _, c := range []Category{CategoryWeb, CategoryLanguages, CategoryData, CategoryCloud} {
		out = append(out, s[c]...)
	}
	if len(out) == 0 {
		return []string{"Fundamentals"}
	}
	if len(out) > 4 {
		out = out[:4]
	}
	return out
}
