package usecase

import (
	"context"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, state *entity.QuantumState) error {
	args := that.Called(ctx, state)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, areaID string) (*entity.QuantumState, error) {
	args := that.Called(ctx, areaID)
	state, _ := args.Get(0).(*entity.QuantumState)
	return state, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, areaID string) error {
	args := that.Called(ctx, areaID)
	return args.Error(0)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (that *mockHistoryRepo) Save(ctx context.Context, result *entity.GameResult) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockHistoryRepo) ListByPlayer(ctx context.Context, playerID string) ([]entity.GameResult, error) {
	args := that.Called(ctx, playerID)
	results, _ := args.Get(0).([]entity.GameResult)
	return results, args.Error(1)
}

func (that *mockHistoryRepo) List(ctx context.Context, limit int) ([]entity.GameResult, error) {
	args := that.Called(ctx, limit)
	results, _ := args.Get(0).([]entity.GameResult)
	return results, args.Error(1)
}
