package ui

import "sync"

// MockTerminal records everything written to it. Status holds the lines of
// the most recent SetStatus call.
type MockTerminal struct {
	m      sync.Mutex
	Output []string
	Errors []string
	Status []string

	StatusUpdates int
}

var _ Terminal = &MockTerminal{}

func (m *MockTerminal) Print(line string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.Output = append(m.Output, line)
}

func (m *MockTerminal) Error(line string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.Errors = append(m.Errors, line)
}

func (m *MockTerminal) SetStatus(lines []string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.Status = append([]string{}, lines...)
	m.StatusUpdates++
}

func (m *MockTerminal) CanUpdateStatus() bool {
	return true
}
