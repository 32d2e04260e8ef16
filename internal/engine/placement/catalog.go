// Package placement implements deterministic JD analysis: skill extraction,
// readiness scoring with confidence adjustment, company classification and
// templated plan, checklist and question generation.
//
// Every function here is pure. Callers own the resulting Analysis and persist
// it through internal/engine/records.
package placement

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category identifies a skill bucket.
type Category string

const (
	CategoryCoreCS    Category = "coreCS"
	CategoryLanguages Category = "languages"
	CategoryWeb       Category = "web"
	CategoryData      Category = "data"
	CategoryCloud     Category = "cloud"
	CategoryTesting   Category = "testing"
	CategoryOther     Category = "other"
)

// Categories lists every category in extraction order.
var Categories = []Category{
	CategoryCoreCS, CategoryLanguages, CategoryWeb, CategoryData,
	CategoryCloud, CategoryTesting, CategoryOther,
}

//go:embed catalog.yaml
var catalogYAML []byte

type categoryDef struct {
	Key       Category `yaml:"key"`
	Label     string   `yaml:"label"`
	Keywords  []string `yaml:"keywords"`
	WholeWord []string `yaml:"whole_word"`
	// Aliases are alternate spellings, always matched as whole words and
	// reported under the keyword they belong to.
	Aliases map[string][]string `yaml:"aliases"`
}

type industryDef struct {
	Fragments []string `yaml:"fragments"`
	Industry  string   `yaml:"industry"`
}

type catalogFile struct {
	Categories          []categoryDef       `yaml:"categories"`
	Fallback            []string            `yaml:"fallback"`
	Questions           map[string][]string `yaml:"questions"`
	GenericQuestions    []string            `yaml:"generic_questions"`
	EnterpriseCompanies []string            `yaml:"enterprise_companies"`
	Industries          []industryDef       `yaml:"industries"`
}

// keyword is a compiled table entry.
type keyword struct {
	name      string
	lower     string
	wholeWord bool
	aliases   []string
}

type catalog struct {
	keywords   map[Category][]keyword
	labels     map[Category]string
	byLabel    map[string]Category
	bySkill    map[string]Category
	fallback   []string
	questions  map[string][]string
	generic    []string
	enterprise []string
	industries []industryDef
}

var cat = mustLoadCatalog(catalogYAML)

func mustLoadCatalog(data []byte) *catalog {
	c, err := parseCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("placement: embedded catalog: %v", err))
	}
	return c
}

func parseCatalog(data []byte) (*catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(f.Fallback) == 0 {
		return nil, fmt.Errorf("fallback skills are empty")
	}

	c := &catalog{
		keywords:   make(map[Category][]keyword, len(Categories)),
		labels:     make(map[Category]string, len(Categories)),
		byLabel:    make(map[string]Category),
		bySkill:    make(map[string]Category),
		fallback:   f.Fallback,
		questions:  make(map[string][]string, len(f.Questions)),
		generic:    f.GenericQuestions,
		industries: f.Industries,
	}

	known := make(map[Category]bool, len(Categories))
	for _, k := range Categories {
		known[k] = true
	}

	for _, def := range f.Categories {
		if !known[def.Key] {
			return nil, fmt.Errorf("unknown category %q", def.Key)
		}
		whole := make(map[string]bool, len(def.WholeWord))
		for _, w := range def.WholeWord {
			whole[strings.ToLower(w)] = true
		}
		aliases := make(map[string][]string, len(def.Aliases))
		for name, forms := range def.Aliases {
			if !containsFold(def.Keywords, name) {
				return nil, fmt.Errorf("category %q: alias for unknown keyword %q", def.Key, name)
			}
			for _, f := range forms {
				aliases[strings.ToLower(name)] = append(aliases[strings.ToLower(name)], strings.ToLower(f))
			}
		}
		for _, name := range def.Keywords {
			lower := strings.ToLower(name)
			c.keywords[def.Key] = append(c.keywords[def.Key], keyword{
				name:      name,
				lower:     lower,
				wholeWord: whole[lower],
				aliases:   aliases[lower],
			})
			c.bySkill[lower] = def.Key
		}
		c.labels[def.Key] = def.Label
		c.byLabel[strings.ToLower(def.Label)] = def.Key
		c.byLabel[strings.ToLower(string(def.Key))] = def.Key
	}
	for _, s := range f.Fallback {
		c.bySkill[strings.ToLower(s)] = CategoryOther
	}

	for skill, qs := range f.Questions {
		c.questions[strings.ToLower(skill)] = qs
	}
	for _, e := range f.EnterpriseCompanies {
		c.enterprise = append(c.enterprise, strings.ToLower(strings.TrimSpace(e)))
	}
	return c, nil
}

// Label returns the display label of a category ("Cloud/DevOps" for cloud).
func Label(c Category) string {
	if l, ok := cat.labels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts a canonical key or a display label, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c, ok := cat.byLabel[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// CategoryOf reports which category a known skill name belongs to.
func CategoryOf(skill string) (Category, bool) {
	c, ok := cat.bySkill[strings.ToLower(strings.TrimSpace(skill))]
	return c, ok
}

// FallbackSkills returns a copy of the generic skill set used when nothing is detected.
func FallbackSkills() []string {
	return append([]string(nil), cat.fallback...)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
