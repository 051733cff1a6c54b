package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/symbollist/usecase"
)

// mockSymbolRepository is a mock implementation of usecase.SymbolRepository.
type mockSymbolRepository struct {
	ListActiveFunc func(ctx context.Context) ([]entity.Symbol, error)
	FindByCodeFunc func(ctx context.Context, code string) (*entity.Symbol, error)
}

func (m *mockSymbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSymbolRepository) FindByCode(ctx context.Context, code string) (*entity.Symbol, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, usecase.ErrSymbolNotFound
}

func TestSymbolUsecase_ListActiveSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		mockListActive  func(ctx context.Context) ([]entity.Symbol, error)
		expectedSymbols []entity.Symbol
		errMsg          string
	}{
		{
			name: "success: returns list of active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{
					{ID: 1, Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", IsActive: true, SortKey: 1},
					{ID: 2, Code: "MSFT", Name: "Microsoft Corp.", Market: "NASDAQ", IsActive: true, SortKey: 2},
				}, nil
			},
			expectedSymbols: []entity.Symbol{
				{ID: 1, Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", IsActive: true, SortKey: 1},
				{ID: 2, Code: "MSFT", Name: "Microsoft Corp.", Market: "NASDAQ", IsActive: true, SortKey: 2},
			},
		},
		{
			name: "success: returns empty list when no active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{}, nil
			},
			expectedSymbols: []entity.Symbol{},
		},
		{
			name: "failure: repository returns error",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			errMsg: "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewSymbolUsecase(&mockSymbolRepository{ListActiveFunc: tt.mockListActive})

			symbols, err := uc.ListActiveSymbols(context.Background())

			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				assert.Nil(t, symbols)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSymbols, symbols)
		})
	}
}

func TestSymbolUsecase_CompanyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		code       string
		findByCode func(ctx context.Context, code string) (*entity.Symbol, error)
		want       string
	}{
		{
			name: "catalog name",
			code: "AAPL",
			findByCode: func(context.Context, string) (*entity.Symbol, error) {
				return &entity.Symbol{Code: "AAPL", Name: "Apple Inc."}, nil
			},
			want: "Apple Inc.",
		},
		{
			name: "unknown symbol falls back to the code",
			code: "ZZZZ",
			want: "ZZZZ",
		},
		{
			name: "blank catalog name falls back to the code",
			code: "AAPL",
			findByCode: func(context.Context, string) (*entity.Symbol, error) {
				return &entity.Symbol{Code: "AAPL"}, nil
			},
			want: "AAPL",
		},
		{
			name: "repository error falls back to the code",
			code: "AAPL",
			findByCode: func(context.Context, string) (*entity.Symbol, error) {
				return nil, errors.New("timeout")
			},
			want: "AAPL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewSymbolUsecase(&mockSymbolRepository{FindByCodeFunc: tt.findByCode})

			assert.Equal(t, tt.want, uc.CompanyName(context.Background(), tt.code))
		})
	}
}
