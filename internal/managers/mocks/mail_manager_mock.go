package mocks

import "github.com/stretchr/testify/mock"

// MockMailManager simulates mail delivery in tests.
type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendWelcomeMail(email, name string) error {
	args := m.Called(email, name)
	return args.Error(0)
}
