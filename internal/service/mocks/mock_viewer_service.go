package mocks

import (
	"context"

	"docview/internal/model"
	"docview/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockViewerService struct {
	mock.Mock
}

func (m *MockViewerService) View(ctx context.Context, file model.File) (*model.ContentModel, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentModel), args.Error(1)
}

func (m *MockViewerService) Current(ctx context.Context) (*model.ContentModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentModel), args.Error(1)
}

func (m *MockViewerService) Reset(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockViewerService) Status(ctx context.Context) service.Status {
	args := m.Called(ctx)
	return args.Get(0).(service.Status)
}
