//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "dogshelter-api"
	ConsumerName = "adoption-portal"

	StateDogsBaseline = "no dogs in the shelter"
	StateDogsListed   = "the shelter lists a mix of breeds and statuses"
	StateDogExists    = "dog with id 101 exists"
	StateDogMissing   = "no dog with id 404"
)

const (
	ExistingDogID int64 = 101
	MissingDogID  int64 = 404

	FilterBreed = "Beagle"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleDogPayload is the dog the provider seeds for StateDogExists.
func ExampleDogPayload() map[string]any {
	return map[string]any{
		"id":     ExistingDogID,
		"name":   "Biscuit",
		"breed":  FilterBreed,
		"status": "AVAILABLE",
	}
}

// ShelterRoster is the provider fixture for StateDogsListed.
func ShelterRoster() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "Buddy", "breed": "Labrador", "status": "AVAILABLE"},
		{"id": 2, "name": "Daisy", "breed": FilterBreed, "status": "AVAILABLE"},
		{"id": 3, "name": "Luna", "breed": FilterBreed, "status": "PENDING"},
		{"id": 4, "name": "Rocky", "breed": "Husky", "status": "ADOPTED"},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
