package engine_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.ContactFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// fixedClock is the reference "now" shared by the parser and importer tests.
var fixedClock = MockClock{CurrentTime: time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)}
