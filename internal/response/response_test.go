package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlain(t *testing.T) {
	r := Response{
		Step:             "Implementation 2/6: Add the REST resource",
		Actions:          []string{"Created GreetingResource.java", "Added quarkus-rest"},
		Details:          "./mvnw quarkus:add-extension -Dextensions=\"rest\"\n",
		ValidationPrompt: "Does the endpoint answer on /hello?",
		Summary:          []string{"✓ analyse", "→ rest-resource"},
	}

	got := NewRenderer(true).Render(r)
	want := `## 📍 Step: Implementation 2/6: Add the REST resource

### Actions
- Created GreetingResource.java
- Added quarkus-rest

### Technical details
./mvnw quarkus:add-extension -Dextensions="rest"

### ✋ Validation
Does the endpoint answer on /hello?

### 📊 Summary
✓ analyse
→ rest-resource
`
	assert.Equal(t, want, got)
}

func TestRenderOmitsEmptySections(t *testing.T) {
	got := NewRenderer(true).Render(Response{Step: "Gathering"})

	assert.Equal(t, "## 📍 Step: Gathering\n", got)
	for _, h := range []string{ActionsHeading, DetailsHeading, ValidationHeading, SummaryHeading} {
		assert.NotContains(t, got, h)
	}
}

func TestRenderStyledKeepsSectionOrder(t *testing.T) {
	got := NewRenderer(false).Render(Response{
		Step:             "Planning",
		Actions:          []string{"Drafted plan"},
		ValidationPrompt: "Approve?",
		Summary:          []string{"6 steps"},
	})

	order := []string{StepHeading, ActionsHeading, ValidationHeading, SummaryHeading}
	last := -1
	for _, h := range order {
		idx := strings.Index(got, h)
		assert.Greater(t, idx, last, "section %q out of order", h)
		last = idx
	}
}
