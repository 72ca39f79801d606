package mocks

import (
	"strings"
	"sync"

	"github.com/mcoot/clubroster/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Queued results are returned in order; once a queue is empty Intn returns 0
// and String returns the first alphabet symbol repeated to the requested length.
type MockRandom struct {
	mu sync.Mutex

	intnResults   []int
	stringResults []string
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intnResults) == 0 {
		return 0
	}
	result := r.intnResults[0]
	r.intnResults = r.intnResults[1:]
	return result
}

// String returns the next queued result, or a deterministic filler string
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringResults) == 0 {
		if length <= 0 || alphabet == "" {
			return ""
		}
		return strings.Repeat(alphabet[:1], length)
	}
	result := r.stringResults[0]
	r.stringResults = r.stringResults[1:]
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = append(r.intnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringResults = append(r.stringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = nil
	r.stringResults = nil
}
