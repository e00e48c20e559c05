package packaging

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(content)
	}
	return files
}

func TestBuild(t *testing.T) {
	generatedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	html := "<!DOCTYPE html><html><body>Bakery</body></html>"

	data, err := Build(html, "my-bakery", generatedAt)
	require.NoError(t, err)

	files := readArchive(t, data)
	require.Len(t, files, 3)
	assert.Equal(t, html, files["index.html"])

	var manifest map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(files["package.json"]), &manifest))
	assert.Equal(t, "my-bakery", manifest["name"])
	assert.Equal(t, "1.0.0", manifest["version"])
	assert.Equal(t, "index.html", manifest["main"])
	assert.Equal(t, "serve -s .", manifest["scripts"].(map[string]interface{})["start"])
	assert.Equal(t, "^14.0.0", manifest["devDependencies"].(map[string]interface{})["serve"])

	assert.Contains(t, files["README.md"], "# my-bakery")
	assert.Contains(t, files["README.md"], "- Netlify")
	assert.Contains(t, files["README.md"], "Generated on: 2026-03-14T09:26:53Z")
}

func TestBuildRejectsEmptyCode(t *testing.T) {
	_, err := Build("  \n", "x", time.Now())
	assert.ErrorIs(t, err, ErrNoCode)
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultProjectName},
		{"   ", DefaultProjectName},
		{"my-site", "my-site"},
		{"My Cool Site!", "My-Cool-Site"},
		{`evil"; filename=x`, "evil-filename-x"},
		{"../../etc", "etc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectName(tt.in))
		})
	}
}
