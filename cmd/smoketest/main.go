package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Exercises a running API end to end: health, enhancement, generation and
// download.
func main() {
	baseURL := flag.String("url", "http://localhost:3000", "API base URL")
	model := flag.String("model", "claude", "provider to request")
	prompt := flag.String("prompt", "Create a contact form for a bakery", "prompt to generate from")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Minute}
	base := strings.TrimRight(*baseURL, "/")

	// 1. Health
	var health struct {
		Status   string          `json:"status"`
		Version  string          `json:"version"`
		Features map[string]bool `json:"features"`
	}
	getJSON(client, base+"/health", &health)
	log.Printf("Health: %s (version %s, features %v)", health.Status, health.Version, health.Features)

	// 2. Enhance
	var enhanced struct {
		EnhancedPrompt string `json:"enhancedPrompt"`
		Method         string `json:"method"`
	}
	postJSON(client, base+"/api/enhance-prompt", map[string]any{"prompt": *prompt}, &enhanced)
	log.Printf("Enhanced with %s (%d chars)", enhanced.Method, len(enhanced.EnhancedPrompt))

	// 3. Generate
	var generated struct {
		Code  string `json:"code"`
		Model string `json:"model"`
	}
	postJSON(client, base+"/api/generate", map[string]any{
		"prompt":     enhanced.EnhancedPrompt,
		"model":      *model,
		"promptMode": "enhanced",
		"isEnhanced": true,
	}, &generated)
	if strings.Contains(generated.Code, "```") {
		log.Fatal("Generated code still contains code fences")
	}
	log.Printf("Generated %d bytes of HTML with %s", len(generated.Code), generated.Model)

	// 4. Download
	body, _ := json.Marshal(map[string]string{"code": generated.Code, "projectName": "smoketest"})
	resp, err := client.Post(base+"/api/download", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Download request failed: %v", err)
	}
	defer resp.Body.Close()
	archive, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Fatalf("Download failed: status %d, err %v", resp.StatusCode, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		log.Fatalf("Download is not a ZIP archive: %v", err)
	}
	for _, f := range zr.File {
		log.Printf("  %s (%d bytes)", f.Name, f.UncompressedSize64)
	}

	log.Println("SUCCESS: all endpoints answered")
}

func getJSON(client *http.Client, url string, out any) {
	resp, err := client.Get(url)
	if err != nil {
		log.Fatalf("GET %s failed: %v", url, err)
	}
	decode(resp, url, out)
}

func postJSON(client *http.Client, url string, payload, out any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("POST %s failed: %v", url, err)
	}
	decode(resp, url, out)
}

func decode(resp *http.Response, url string, out any) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		log.Fatalf("%s: expected 200, got %d. Body: %s", url, resp.StatusCode, b)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Fatalf("%s: %v", url, fmt.Errorf("decode response: %w", err))
	}
}
