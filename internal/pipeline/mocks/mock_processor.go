package mocks

import (
	"context"

	"docview/internal/model"
	"docview/internal/pipeline"
	"github.com/stretchr/testify/mock"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) ProcessObserved(ctx context.Context, file model.File, observe pipeline.StateObserver) (*model.ContentModel, error) {
	args := m.Called(ctx, file, observe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentModel), args.Error(1)
}
