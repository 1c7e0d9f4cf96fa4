package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	apiServerURL     = getEnv("API_SERVER_URL", "http://localhost:8080")
	testUserEmail    = fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	testUserPassword = "testPassword123"
	authToken        string
	recipeID         string
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		fmt.Println("Skipping integration tests. Set INTEGRATION_TEST=true to run.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, apiServerURL+path, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Token "+authToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(apiServerURL + "/health")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestUserRegistration(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/user/create/", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
		"name":     "Test User",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected status 201, got %d", resp.StatusCode)
	}
}

func TestTokenIssuance(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/user/token/", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	authToken = result["token"]
	if authToken == "" {
		t.Fatal("expected a token in the response")
	}
}

func TestProfile(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token from previous test")
	}

	resp := doJSON(t, http.MethodGet, "/user/me/", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var profile map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if profile["email"] != testUserEmail {
		t.Errorf("expected email %q, got %v", testUserEmail, profile["email"])
	}
}

func TestRecipeLifecycle(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token from previous test")
	}

	resp := doJSON(t, http.MethodPost, "/recipes/tags/", map[string]string{"name": "Integration"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create tag: expected 201, got %d", resp.StatusCode)
	}
	var tag map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&tag); err != nil {
		t.Fatalf("decode tag: %v", err)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, "/recipes/recipes/", map[string]interface{}{
		"title":        "Integration Stew",
		"time_minutes": 40,
		"price":        6.50,
		"tags":         []string{tag["id"].(string)},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create recipe: expected 201, got %d", resp.StatusCode)
	}
	var recipe map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&recipe); err != nil {
		t.Fatalf("decode recipe: %v", err)
	}
	resp.Body.Close()

	recipeID = recipe["id"].(string)

	resp = doJSON(t, http.MethodPatch, "/recipes/recipes/"+recipeID+"/", map[string]string{
		"title": "Integration Stew v2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch recipe: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, "/recipes/recipes/"+recipeID+"/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get recipe: expected 200, got %d", resp.StatusCode)
	}
	var fetched map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode recipe: %v", err)
	}
	resp.Body.Close()
	if fetched["title"] != "Integration Stew v2" {
		t.Errorf("expected patched title, got %v", fetched["title"])
	}

	resp = doJSON(t, http.MethodDelete, "/recipes/recipes/"+recipeID+"/", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete recipe: expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, "/recipes/recipes/"+recipeID+"/", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthorizedAccess(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, apiServerURL+"/recipes/recipes/", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", resp.StatusCode)
	}
}
