package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorageManager simulates avatar mirroring in tests.
type MockStorageManager struct {
	mock.Mock
}

func (m *MockStorageManager) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStorageManager) MirrorAvatar(ctx context.Context, path, key string) error {
	args := m.Called(ctx, path, key)
	return args.Error(0)
}
