package jobs

// DefaultMinMatchScore is the threshold used until the user sets one.
const DefaultMinMatchScore = 40

// Preferences drive match scoring. They are saved as a whole and never merged.
type Preferences struct {
	RoleKeywords       []string `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredModes     []Mode   `json:"preferredModes"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             []string `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// DefaultPreferences returns empty preferences with the default threshold.
func DefaultPreferences() Preferences {
	return Preferences{
		RoleKeywords:       []string{},
		PreferredLocations: []string{},
		PreferredModes:     []Mode{},
		Skills:             []string{},
		MinMatchScore:      DefaultMinMatchScore,
	}
}

// IsEmpty reports whether no matching criterion is set.
func (p Preferences) IsEmpty() bool {
	return len(nonBlank(p.RoleKeywords)) == 0 &&
		len(nonBlank(p.PreferredLocations)) == 0 &&
		len(p.PreferredModes) == 0 &&
		p.ExperienceLevel == "" &&
		len(nonBlank(p.Skills)) == 0
}
