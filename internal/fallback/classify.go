package fallback

import "strings"

// Category is the kind of page a prompt asks for
type Category string

const (
	CategoryLanding   Category = "landing"
	CategoryContact   Category = "contact"
	CategoryProfile   Category = "profile"
	CategoryDashboard Category = "dashboard"
	CategoryButtons   Category = "buttons"
	CategoryPortfolio Category = "portfolio"
	CategoryBlog      Category = "blog"
	CategoryEcommerce Category = "ecommerce"
	CategoryGeneral   Category = "general"
)

// rule maps a set of keywords to a category. Rules are checked in order
// and the first rule with any keyword contained in the prompt wins.
type rule struct {
	keywords []string
	category Category
}

var codeRules = []rule{
	{keywords: []string{"landing", "homepage"}, category: CategoryLanding},
	{keywords: []string{"form", "contact"}, category: CategoryContact},
	{keywords: []string{"card", "profile"}, category: CategoryProfile},
	{keywords: []string{"dashboard", "admin"}, category: CategoryDashboard},
	{keywords: []string{"button"}, category: CategoryButtons},
	{keywords: []string{"portfolio", "resume"}, category: CategoryPortfolio},
	{keywords: []string{"blog", "article"}, category: CategoryBlog},
	{keywords: []string{"ecommerce", "shop"}, category: CategoryEcommerce},
}

var enhancementRules = []rule{
	{keywords: []string{"landing", "homepage"}, category: CategoryLanding},
	{keywords: []string{"dashboard", "admin"}, category: CategoryDashboard},
	{keywords: []string{"ecommerce", "product", "shop"}, category: CategoryEcommerce},
	{keywords: []string{"form", "contact"}, category: CategoryContact},
	{keywords: []string{"portfolio", "profile"}, category: CategoryPortfolio},
}

// ClassifyCode picks the fallback page template for a prompt
func ClassifyCode(prompt string) Category {
	return classify(codeRules, prompt, CategoryLanding)
}

// ClassifyEnhancement picks the fallback enhancement clause for a prompt
func ClassifyEnhancement(prompt string) Category {
	return classify(enhancementRules, prompt, CategoryGeneral)
}

func classify(rules []rule, prompt string, def Category) Category {
	lower := strings.ToLower(prompt)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return def
}
