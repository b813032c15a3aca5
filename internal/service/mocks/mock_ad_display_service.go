package mocks

import (
	"context"

	"ad-widget/internal/domain"
	"ad-widget/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAdDisplayService struct {
	mock.Mock
}

func (m *MockAdDisplayService) Initialize(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockAdDisplayService) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAdDisplayService) Render(ctx context.Context, ads []domain.Advertisement) {
	m.Called(ctx, ads)
}

func (m *MockAdDisplayService) Dismiss(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdDisplayService) State() service.State {
	args := m.Called()
	return args.Get(0).(service.State)
}

var _ service.AdDisplayService = (*MockAdDisplayService)(nil)
