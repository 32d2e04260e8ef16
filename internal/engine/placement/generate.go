package placement

import (
	"fmt"
	"strings"
)

// MaxQuestions is the exact length of every generated question list.
const MaxQuestions = 10

// PlanDay is one entry of the 7-day preparation plan.
type PlanDay struct {
	Day   string   `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// ChecklistRound groups preparation items for one interview round.
type ChecklistRound struct {
	RoundTitle string   `json:"roundTitle"`
	Items      []string `json:"items"`
}

var dsaSkills = []string{"DSA", "Data Structures", "Algorithms"}

func hasDSA(s Skills) bool {
	for _, k := range dsaSkills {
		for _, got := range s[CategoryCoreCS] {
			if strings.EqualFold(got, k) {
				return true
			}
		}
	}
	return false
}

// GeneratePlan builds the study plan. A fallback-only extraction gets a
// 4-entry foundations plan; anything else gets the 5-entry week plan with
// tasks worded for the detected categories.
func GeneratePlan(s Skills) []PlanDay {
	if s.IsFallbackOnly() {
		return []PlanDay{
			{Day: "Day 1-2", Focus: "Foundations", Tasks: []string{
				"Revise one programming language end to end: syntax, collections, error handling.",
				"Solve 10 easy problems on arrays and strings.",
			}},
			{Day: "Day 3-4", Focus: "Problem solving", Tasks: []string{
				"Practice 10 medium problems; write the approach before coding.",
				"Review time and space complexity for each solution.",
			}},
			{Day: "Day 5-6", Focus: "Projects + communication", Tasks: []string{
				"Prepare a 2-minute walkthrough of your best project.",
				"Practice explaining one technical decision to a non-technical listener.",
			}},
			{Day: "Day 7", Focus: "Mock interview", Tasks: []string{
				"Run one timed mock interview and note weak answers.",
				"Re-read the job description and list the skills to learn next.",
			}},
		}
	}

	day12 := []string{"Revise OOP concepts and the basics of your main language."}
	if s.Has(CategoryCoreCS) {
		day12 = append(day12, fmt.Sprintf("Review core CS topics from the JD: %s.", strings.Join(s[CategoryCoreCS], ", ")))
	} else {
		day12 = append(day12, "Review DBMS, OS and networking fundamentals.")
	}
	if s.Has(CategoryLanguages) {
		day12 = append(day12, fmt.Sprintf("Write small programs in %s to refresh syntax and standard library.", s[CategoryLanguages][0]))
	}

	day34 := []string{"Solve 15 array, string and hashing problems."}
	if hasDSA(s) {
		day34 = append(day34, "Add 10 problems on trees, graphs and dynamic programming; the JD asks for DSA explicitly.")
	} else {
		day34 = append(day34, "Practice 5 problems on recursion and sorting.")
	}

	day5 := []string{"Update your resume bullets to mirror the JD's wording."}
	if s.Has(CategoryWeb) {
		day5 = append(day5, fmt.Sprintf("Align a project with the JD's web stack (%s) and be ready to explain its architecture.", strings.Join(s[CategoryWeb], ", ")))
	} else {
		day5 = append(day5, "Pick one project and document its design decisions.")
	}
	if s.Has(CategoryData) {
		day5 = append(day5, "Revise SQL joins, indexing and schema design using your project's data model.")
	}
	if s.Has(CategoryCloud) {
		day5 = append(day5, fmt.Sprintf("Deploy or containerize the project using %s.", s[CategoryCloud][0]))
	}

	day6 := []string{"Answer the generated interview questions out loud and time yourself."}
	if s.Has(CategoryTesting) {
		day6 = append(day6, fmt.Sprintf("Prepare examples of tests you wrote with %s.", strings.Join(s[CategoryTesting], ", ")))
	}

	return []PlanDay{
		{Day: "Day 1-2", Focus: "Basics + core CS", Tasks: day12},
		{Day: "Day 3-4", Focus: "DSA + coding practice", Tasks: day34},
		{Day: "Day 5", Focus: "Project + resume alignment", Tasks: day5},
		{Day: "Day 6", Focus: "Mock interview questions", Tasks: day6},
		{Day: "Day 7", Focus: "Revision + weak areas", Tasks: []string{
			"Revisit every skill still marked as practice.",
			"Re-solve the problems you got wrong this week.",
		}},
	}
}

// GenerateChecklist always emits the four fixed rounds; rounds 2 and 3 grow
// with the detected categories.
func GenerateChecklist(s Skills) []ChecklistRound {
	aptitude := ChecklistRound{RoundTitle: "Round 1: Aptitude / Basics", Items: []string{
		"Practice quantitative aptitude: percentages, ratios, time and work.",
		"Practice logical reasoning puzzles.",
		"Revise verbal ability basics.",
		"Take one timed aptitude test.",
		"Review basic programming output questions.",
	}}

	dsa := ChecklistRound{RoundTitle: "Round 2: DSA + Core CS", Items: []string{
		"Arrays, strings and hashing patterns.",
		"Recursion and sorting algorithms.",
		"Time and space complexity analysis.",
		"OOP principles with examples.",
	}}
	if hasDSA(s) {
		dsa.Items = append(dsa.Items, "Trees, graphs and dynamic programming.")
	}
	if s.Has(CategoryCoreCS) {
		dsa.Items = append(dsa.Items, fmt.Sprintf("Core CS topics from the JD: %s.", strings.Join(s[CategoryCoreCS], ", ")))
	}
	if s.Has(CategoryData) {
		dsa.Items = append(dsa.Items, "DBMS: normalization, transactions, indexing.")
	}

	tech := ChecklistRound{RoundTitle: "Round 3: Tech Interview (Projects + Stack)", Items: []string{
		"Explain your top 2 projects end to end.",
		"Prepare trade-offs you made and what you would change.",
		"Review your resume line by line for questions it invites.",
	}}
	if s.Has(CategoryLanguages) {
		tech.Items = append(tech.Items, fmt.Sprintf("Language depth: %s.", strings.Join(s[CategoryLanguages], ", ")))
	}
	if s.Has(CategoryWeb) {
		tech.Items = append(tech.Items, fmt.Sprintf("Web stack questions: %s.", strings.Join(s[CategoryWeb], ", ")))
	}
	if s.Has(CategoryData) {
		tech.Items = append(tech.Items, fmt.Sprintf("Write queries and explain data design: %s.", strings.Join(s[CategoryData], ", ")))
	}
	if s.Has(CategoryCloud) {
		tech.Items = append(tech.Items, fmt.Sprintf("Deployment and tooling: %s.", strings.Join(s[CategoryCloud], ", ")))
	}
	if s.Has(CategoryTesting) {
		tech.Items = append(tech.Items, fmt.Sprintf("Testing approach: %s.", strings.Join(s[CategoryTesting], ", ")))
	}

	hr := ChecklistRound{RoundTitle: "Round 4: Managerial / HR", Items: []string{
		"Prepare a crisp self-introduction.",
		"Research the company and the role.",
		"Prepare STAR stories for teamwork, conflict and failure.",
		"Prepare questions to ask the interviewer.",
		"Know your expectations on location and compensation.",
	}}

	return []ChecklistRound{aptitude, dsa, tech, hr}
}

// GenerateQuestions fills questions for detected skills in category order,
// skipping duplicates, tops up with generic questions and truncates to
// exactly MaxQuestions.
func GenerateQuestions(s Skills) []string {
	out := make([]string, 0, MaxQuestions)
	seen := make(map[string]bool)
	add := func(q string) {
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		out = append(out, q)
	}

	for _, c := range Categories {
		for _, skill := range s[c] {
			for _, q := range cat.questions[strings.ToLower(skill)] {
				add(q)
			}
		}
	}
	for _, q := range cat.generic {
		if len(out) >= MaxQuestions {
			break
		}
		add(q)
	}
	if len(out) > MaxQuestions {
		out = out[:MaxQuestions]
	}
	return out
}
