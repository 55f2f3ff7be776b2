package mock

import (
	"context"
	"strings"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, uses default canned behavior.
	GenerateTextFunc func(ctx context.Context, prompt string, maxLength int) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText returns a canned support answer bounded to maxLength runes.
// The prompt's last line is echoed so tests can see what was asked.
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string, maxLength int) (string, error) {
	m.callCount++

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt, maxLength)
	}

	// Default: canned answer referencing the prompt tail
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	tail := ""
	if len(lines) > 0 {
		tail = strings.TrimSpace(lines[len(lines)-1])
	}
	answer := "Mock answer for: " + tail

	if maxLength > 0 {
		runes := []rune(answer)
		if len(runes) > maxLength {
			answer = string(runes[:maxLength])
		}
	}
	return answer, nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateTextFunc = nil
}
