package provider

import (
	"context"
	"net/http"
	"sort"

	"github.com/frontdesigner/api/internal/models"
)

// SystemPrompt is sent with every generation request
const SystemPrompt = `You are an expert frontend developer who creates modern, responsive web interfaces.
Generate complete HTML code with the following requirements:
- Use Tailwind CSS (include CDN)
- Create responsive designs that work on mobile, tablet, and desktop
- Use semantic HTML5 elements
- Add interactive elements with vanilla JavaScript when needed
- Use modern design patterns and attractive color schemes
- Ensure accessibility with proper ARIA labels and semantic structure
- Generate complete, production-ready HTML that can be deployed immediately
- Include meta tags for SEO and social sharing
- Add smooth animations and transitions
- Use modern CSS Grid and Flexbox for layouts
- Return only clean HTML code without explanations or markdown formatting`

// maxOutputTokens caps the completion length for claude and mistral
const maxOutputTokens = 4000

// Provider builds and parses the HTTP exchange with one AI backend
type Provider interface {
	Name() models.ProviderName
	BuildRequest(ctx context.Context, prompt string, image *Image) (*http.Request, error)
	ParseResponse(body []byte) (string, error)
}

// ImageReader is implemented by providers that send the attached image
// upstream. Other providers only see whether an image was attached.
type ImageReader interface {
	ReadsImages() bool
}

// Settings holds the credential and endpoint for one provider.
// Empty Model and BaseURL fall back to the provider defaults.
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config lists the settings for every known provider
type Config struct {
	Claude  Settings
	Mistral Settings
	Gemini  Settings
}

// Registry maps provider names to configured providers
type Registry struct {
	providers map[models.ProviderName]Provider
}

// NewRegistry registers every provider that has an API key
func NewRegistry(cfg Config) *Registry {
	r := &Registry{providers: make(map[models.ProviderName]Provider)}
	if cfg.Claude.APIKey != "" {
		r.Register(NewClaude(cfg.Claude))
	}
	if cfg.Mistral.APIKey != "" {
		r.Register(NewMistral(cfg.Mistral))
	}
	if cfg.Gemini.APIKey != "" {
		r.Register(NewGemini(cfg.Gemini))
	}
	return r
}

// Register adds or replaces a provider
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Lookup returns the provider for name or ErrUnavailable
func (r *Registry) Lookup(name models.ProviderName) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, &UnavailableError{Provider: name}
	}
	return p, nil
}

// Enabled reports whether name has a configured provider
func (r *Registry) Enabled(name models.ProviderName) bool {
	_, ok := r.providers[name]
	return ok
}

// Names returns the configured provider names in sorted order
func (r *Registry) Names() []models.ProviderName {
	names := make([]models.ProviderName, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func withImagePrompt(prompt string, image *Image, template string) string {
	if image == nil {
		return prompt
	}
	return template + prompt
}
