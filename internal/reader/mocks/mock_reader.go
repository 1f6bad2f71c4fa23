package mocks

import (
	"context"

	"docview/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) Type() model.ContentType {
	args := m.Called()
	return args.Get(0).(model.ContentType)
}

func (m *MockReader) Read(ctx context.Context, b []byte) (model.Content, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Content), args.Error(1)
}
