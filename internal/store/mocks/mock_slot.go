package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSlot struct {
	mock.Mock
}

func (m *MockSlot) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlot) Write(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
