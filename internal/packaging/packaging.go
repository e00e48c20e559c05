package packaging

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// DefaultProjectName is used when the caller does not name the project
const DefaultProjectName = "frontend-project"

// ErrNoCode is returned when there is no HTML to package
var ErrNoCode = errors.New("no code provided")

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Main            string            `json:"main"`
	Scripts         packageScripts    `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type packageScripts struct {
	Start string `json:"start"`
	Build string `json:"build"`
}

// ProjectName turns user input into a name safe for file names and headers
func ProjectName(name string) string {
	name = unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return DefaultProjectName
	}
	return name
}

// Build creates a deployable ZIP archive containing index.html,
// package.json and README.md
func Build(code, projectName string, generatedAt time.Time) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrNoCode
	}
	projectName = ProjectName(projectName)

	manifest, err := json.MarshalIndent(packageJSON{
		Name:        projectName,
		Version:     "1.0.0",
		Description: "AI-generated frontend project",
		Main:        "index.html",
		Scripts: packageScripts{
			Start: "serve -s .",
			Build: "echo 'Build complete'",
		},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{"serve": "^14.0.0"},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal package.json: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	files := []struct {
		name string
		data []byte
	}{
		{"index.html", []byte(code)},
		{"package.json", manifest},
		{"README.md", []byte(readme(projectName, generatedAt))},
	}
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.name,
			Method:   zip.Deflate,
			Modified: generatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func readme(projectName string, generatedAt time.Time) string {
	return fmt.Sprintf(`# %s

This project was generated using AI-powered Frontend Designer.

## Getting Started

1. Open `+"`index.html`"+` in your browser
2. Or serve with: `+"`npx serve .`"+`

## Deployment

This project is ready to deploy to:
- Netlify
- Vercel
- GitHub Pages
- Any static hosting service

Generated on: %s
`, projectName, generatedAt.UTC().Format(time.RFC3339))
}
