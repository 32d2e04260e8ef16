package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ReactNodeSQL(t *testing.T) {
	got := Extract("Looking for a React and Node.js developer with SQL experience")

	assert.Subset(t, got[CategoryWeb], []string{"React", "Node.js"})
	assert.Subset(t, got[CategoryData], []string{"SQL"})
	assert.Empty(t, got[CategoryCoreCS])
	assert.Empty(t, got[CategoryOther])
}

func TestExtract_Fallback(t *testing.T) {
	for _, text := range []string{"", "   ", "We value kindness and punctuality."} {
		got := Extract(text)
		assert.Equal(t, []string{"Problem Solving", "Communication", "Basic Coding", "Projects"}, got[CategoryOther], "text %q", text)
		for _, c := range Categories {
			if c == CategoryOther {
				continue
			}
			assert.NotNil(t, got[c], "category %s must be non-nil", c)
			assert.Empty(t, got[c], "category %s for %q", c, text)
		}
	}
}

func TestExtract_AllKeywordsInCategory(t *testing.T) {
	got := Extract("Stack: Docker, Kubernetes and AWS with a CI/CD pipeline on Linux.")
	assert.Equal(t, []string{"AWS", "Docker", "Kubernetes", "CI/CD", "Linux"}, got[CategoryCloud])
}

func TestExtract_CaseInsensitive(t *testing.T) {
	got := Extract("strong grasp of dsa, oop and dbms; POSTGRESQL preferred")
	assert.Equal(t, []string{"DSA", "OOP", "DBMS"}, got[CategoryCoreCS])
	assert.Contains(t, got[CategoryData], "PostgreSQL")
}

func TestExtract_WholeWordKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		cat  Category
		want []string
	}{
		{"C does not match inside words", "Great communication and critical thinking", CategoryLanguages, []string{}},
		{"C++ does not imply C", "Modern C++ experience", CategoryLanguages, []string{"C++"}},
		{"C on its own", "Embedded C, some Python.", CategoryLanguages, []string{"Python", "C"}},
		{"Java not inside JavaScript", "JavaScript only", CategoryLanguages, []string{"JavaScript"}},
		{"Java at sentence end", "We use Java.", CategoryLanguages, []string{"Java"}},
		{"Go not inside words", "Good logistics background", CategoryLanguages, []string{}},
		{"REST not inside interest", "Interest in restaurants", CategoryWeb, []string{}},
		{"REST APIs", "Design REST APIs", CategoryWeb, []string{"REST"}},
		{"Golang reports Go", "Golang backend, good with Google Cloud", CategoryLanguages, []string{"Go"}},
		{"Go and Golang reported once", "Go (Golang) services", CategoryLanguages, []string{"Go"}},
		{"Golang alias is whole word", "Golangish tooling", CategoryLanguages, []string{}},
		{"RESTful reports REST", "Build RESTful APIs", CategoryWeb, []string{"REST"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.want, got[tt.cat])
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "Python, Django, PostgreSQL, Docker and Selenium; OOP and DSA required."
	assert.Equal(t, Extract(text), Extract(text))
}

func TestSkills_Normalize(t *testing.T) {
	s := Skills{CategoryWeb: {"React"}}.Normalize()
	require.Len(t, s, len(Categories))
	assert.Equal(t, []string{"React"}, s[CategoryWeb])
	assert.Empty(t, s[CategoryOther])

	empty := Skills{}.Normalize()
	assert.Equal(t, FallbackSkills(), empty[CategoryOther])
}

func TestCategoryLookups(t *testing.T) {
	c, ok := CategoryOf("node.js")
	require.True(t, ok)
	assert.Equal(t, CategoryWeb, c)

	c, ok = ParseCategory("Cloud/DevOps")
	require.True(t, ok)
	assert.Equal(t, CategoryCloud, c)

	c, ok = ParseCategory("coreCS")
	require.True(t, ok)
	assert.Equal(t, CategoryCoreCS, c)

	_, ok = ParseCategory("astrology")
	assert.False(t, ok)
	assert.Equal(t, "Cloud/DevOps", Label(CategoryCloud))
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := parseCatalog([]byte("categories: [{key: bogus}]\nfallback: [x]"))
	assert.Error(t, err)

	_, err = parseCatalog([]byte("categories: []"))
	assert.Error(t, err)

	_, err = parseCatalog([]byte("categories: [unclosed"))
	assert.Error(t, err)

	_, err = parseCatalog([]byte("categories: [{key: web, keywords: [REST], aliases: {GraphQL: [gql]}}]\nfallback: [x]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GraphQL")
}
