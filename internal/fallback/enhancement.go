package fallback

const (
	enhancementLead    = "Create a modern, responsive web interface for: "
	enhancementImage   = " Design should complement the provided image reference for visual consistency."
	enhancementClosing = " Ensure production-ready code with proper semantic HTML5, modern CSS techniques, and vanilla JavaScript for interactions."
)

var enhancementClauses = map[Category]string{
	CategoryLanding:   "Include a hero section with gradient background, navigation bar with smooth scrolling, feature cards grid with icons, testimonials section, call-to-action buttons with hover effects, and footer. Use modern typography (Inter font), proper spacing with consistent padding, responsive design for mobile/tablet/desktop, and smooth animations on scroll.",
	CategoryDashboard: "Include sidebar navigation with collapsible menu, main content area with stats cards, data visualization charts, tables with sorting/filtering, user profile dropdown, notification system, and responsive layout. Use professional color scheme with blues and grays, clean typography, proper spacing, and micro-interactions.",
	CategoryEcommerce: "Include product image gallery with zoom functionality, detailed product information section, customer reviews with ratings, add to cart button with quantity selector, related products grid, breadcrumb navigation, and responsive design. Use attractive product photography placeholders, modern card layouts, trust indicators, and smooth checkout flow.",
	CategoryContact:   "Include form fields with proper validation, clear labels, error messages, success states, submit button with loading state, and responsive layout. Use modern form styling with focus states, proper accessibility with ARIA labels, and user-friendly validation feedback.",
	CategoryPortfolio: "Include hero section with profile photo, about section with bio, projects/work gallery with filtering, skills showcase with progress bars, contact information, and social media links. Use creative layouts, modern typography, smooth animations, and portfolio-specific UI patterns.",
	CategoryGeneral:   "Use modern design principles with clean typography, consistent spacing (8px grid system), attractive color palette, responsive layout for all devices, smooth animations and transitions, proper accessibility features with ARIA labels, semantic HTML structure, and interactive elements with hover states.",
}

// Enhancement builds a deterministic enhanced prompt without calling any model
func Enhancement(prompt string, includeImage bool) string {
	text := enhancementLead + prompt + ". " + enhancementClauses[ClassifyEnhancement(prompt)]
	if includeImage {
		text += enhancementImage
	}
	return text + enhancementClosing
}
