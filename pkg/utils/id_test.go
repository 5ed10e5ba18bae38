package utils

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()

	if !strings.HasPrefix(id, "run-") {
		t.Errorf("GenerateRunID should start with 'run-': %s", id)
	}

	// run-YYYYMMDD-HHMMSS-xxxxxxxx
	parts := strings.Split(id, "-")
	if len(parts) != 4 {
		t.Fatalf("GenerateRunID should have 4 hyphen-separated parts, got %d: %s", len(parts), id)
	}
	if len(parts[1]) != 8 || len(parts[2]) != 6 {
		t.Errorf("GenerateRunID timestamp malformed: %s", id)
	}
	if len(parts[3]) != 8 {
		t.Errorf("GenerateRunID suffix should be 8 characters, got %q", parts[3])
	}
}

func TestGenerateRunIDConcurrentUniqueness(t *testing.T) {
	const n = 200
	ids := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- GenerateRunID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate run ID: %s", id)
		}
		seen[id] = true
	}
}
