//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:5000")
}

// doJSON sends payload (if any) and decodes the JSON response into a map.
func doJSON(t *testing.T, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", baseURL(), path), &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

// firstCategory returns the id and label of the first listed category.
func firstCategory(t *testing.T) (int, string) {
	t.Helper()
	status, body := doJSON(t, http.MethodGet, "/categories", nil)
	if status != http.StatusOK {
		t.Skipf("no categories seeded (status %d)", status)
	}
	first := body["categories"].([]any)[0].(map[string]any)
	return int(first["id"].(float64)), first["type"].(string)
}
