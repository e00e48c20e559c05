package fallback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		prompt string
		want   Category
	}{
		{"A landing page for a bakery", CategoryLanding},
		{"Homepage for my startup", CategoryLanding},
		{"contact form with validation", CategoryContact},
		{"Profile card for a team member", CategoryProfile},
		{"Admin dashboard with charts", CategoryDashboard},
		{"A set of fancy BUTTONS", CategoryButtons},
		{"My resume site", CategoryPortfolio},
		{"portfolio for a photographer", CategoryPortfolio},
		{"Article layout for a magazine", CategoryBlog},
		{"Ecommerce storefront", CategoryEcommerce},
		{"online shop for shoes", CategoryEcommerce},
		{"something completely different", CategoryLanding},
		// first matching rule wins
		{"landing page with a contact form", CategoryLanding},
		{"blog with a contact form", CategoryContact},
		{"dashboard with a profile card", CategoryProfile},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCode(tt.prompt))
		})
	}
}

func TestClassifyEnhancement(t *testing.T) {
	tests := []struct {
		prompt string
		want   Category
	}{
		{"landing page", CategoryLanding},
		{"admin panel", CategoryDashboard},
		{"product detail page", CategoryEcommerce},
		{"contact us", CategoryContact},
		{"profile page", CategoryPortfolio},
		{"weather widget", CategoryGeneral},
		{"dashboard for a shop", CategoryDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEnhancement(tt.prompt))
		})
	}
}

func TestCodeIsDeterministic(t *testing.T) {
	prompt := "A landing page for a bakery"
	first := Code(prompt)
	assert.Equal(t, first, Code(prompt))
	assert.Contains(t, first, prompt)
	assert.Contains(t, first, `class="hero`)
	assert.NotContains(t, first, "```")
}

func TestEveryCategoryRenders(t *testing.T) {
	categories := []Category{
		CategoryLanding, CategoryContact, CategoryProfile, CategoryDashboard,
		CategoryButtons, CategoryPortfolio, CategoryBlog, CategoryEcommerce,
	}
	for _, c := range categories {
		t.Run(string(c), func(t *testing.T) {
			page := Render(c, "marker prompt text")
			assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
			assert.Contains(t, page, "marker prompt text")
			assert.Contains(t, page, "cdn.tailwindcss.com")
			assert.NotContains(t, page, "```")
		})
	}
}

func TestRenderEscapesPrompt(t *testing.T) {
	page := Code(`landing <script>alert("x")</script>`)
	assert.NotContains(t, page, `<script>alert("x")</script>`)
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestRenderUnknownCategoryFallsBackToMinimalPage(t *testing.T) {
	page := Render(Category("nope"), "a <b> prompt")
	assert.Contains(t, page, "a &lt;b&gt; prompt")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
}

func TestEnhancement(t *testing.T) {
	got := Enhancement("A landing page for a bakery", false)

	assert.True(t, strings.HasPrefix(got, "Create a modern, responsive web interface for: A landing page for a bakery. "))
	assert.Contains(t, got, "Include a hero section with gradient background")
	assert.NotContains(t, got, "image reference")
	assert.True(t, strings.HasSuffix(got, "vanilla JavaScript for interactions."))
}

func TestEnhancementWithImage(t *testing.T) {
	got := Enhancement("weather widget", true)

	assert.Contains(t, got, enhancementClauses[CategoryGeneral])
	assert.Contains(t, got, "Design should complement the provided image reference for visual consistency.")
	assert.True(t, strings.Index(got, "image reference") < strings.Index(got, "Ensure production-ready code"))
}
