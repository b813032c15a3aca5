package mocks

import (
	"context"

	"ad-widget/internal/domain"
	"ad-widget/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) GetAds(ctx context.Context) ([]domain.Advertisement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Advertisement), args.Error(1)
}

func (m *MockAdRepository) Dislike(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.AdRepository = (*MockAdRepository)(nil)
