package mocks

import (
	"fmt"

	"github.com/songguessr/songguessr-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Intn returns queued values; ID returns deterministic sequential IDs.
type MockRandom struct {
	IntnResults []int
	intnIndex   int
	idCounter   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if n > 0 {
		result %= n
	}
	return result
}

// ID returns prefix plus an incrementing counter
func (r *MockRandom) ID(prefix string) string {
	r.idCounter++
	return fmt.Sprintf("%s%08d", prefix, r.idCounter)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears queued results and the ID counter
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.idCounter = 0
}
