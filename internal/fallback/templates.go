package fallback

import (
	"bytes"
	"embed"
	"html"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Prompt string
}

// Code renders the fallback HTML page for a prompt. The prompt is
// HTML-escaped wherever it is interpolated.
func Code(prompt string) string {
	return Render(ClassifyCode(prompt), prompt)
}

// Render renders the template for category
func Render(category Category, prompt string) string {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, string(category)+".html", pageData{Prompt: prompt}); err != nil {
		return minimalPage(prompt)
	}
	return buf.String()
}

func minimalPage(prompt string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Generated Page</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="min-h-screen flex items-center justify-center bg-gray-50">
    <main class="max-w-2xl p-8 text-center">
        <p class="text-xl text-gray-700">` + html.EscapeString(prompt) + `</p>
    </main>
</body>
</html>`
}
