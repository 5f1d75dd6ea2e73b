package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aliyevq/veresiye/internal/apperr"
	"github.com/aliyevq/veresiye/internal/ledger"
)

func TestService_Append(t *testing.T) {
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    ledger.AppendParams
		setupMock func(repo *ledger.MockRepository, dir *ledger.MockCustomerDirectory)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.AppendParams{
				CustomerID:  1,
				Amount:      decimal.NewFromInt(100),
				EventType:   ledger.EventDebt,
				PaymentDate: date,
			},
			setupMock: func(repo *ledger.MockRepository, dir *ledger.MockCustomerDirectory) {
				dir.EXPECT().CustomerExists(gomock.Any(), int64(1)).Return(true, nil)
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = 42
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			params: ledger.AppendParams{
				CustomerID:  1,
				Amount:      decimal.Zero,
				EventType:   ledger.EventDebt,
				PaymentDate: date,
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "NegativeAmount",
			params: ledger.AppendParams{
				CustomerID:  1,
				Amount:      decimal.NewFromInt(-5),
				EventType:   ledger.EventPayment,
				PaymentDate: date,
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "UnknownEventType",
			params: ledger.AppendParams{
				CustomerID:  1,
				Amount:      decimal.NewFromInt(10),
				EventType:   ledger.EventType(7),
				PaymentDate: date,
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "UnknownCustomer",
			params: ledger.AppendParams{
				CustomerID:  999,
				Amount:      decimal.NewFromInt(50),
				EventType:   ledger.EventDebt,
				PaymentDate: date,
			},
			setupMock: func(repo *ledger.MockRepository, dir *ledger.MockCustomerDirectory) {
				dir.EXPECT().CustomerExists(gomock.Any(), int64(999)).Return(false, nil)
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			dir := ledger.NewMockCustomerDirectory(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, dir)
			}

			svc := ledger.NewService(repo, dir)
			got, err := svc.Append(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.params.EventType, got.EventType)
			assert.True(t, got.Amount.Equal(tt.params.Amount))
		})
	}
}

func TestService_AddDebtAndPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	dir := ledger.NewMockCustomerDirectory(ctrl)
	svc := ledger.NewService(repo, dir)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	dir.EXPECT().CustomerExists(gomock.Any(), int64(3)).Return(true, nil).Times(2)
	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = 1
			return nil
		}).
		Times(2)

	debt, err := svc.AddDebt(context.Background(), 3, decimal.NewFromInt(100), date)
	require.NoError(t, err)
	assert.Equal(t, ledger.EventDebt, debt.EventType)

	payment, err := svc.AddPayment(context.Background(), 3, decimal.NewFromInt(40), date)
	require.NoError(t, err)
	assert.Equal(t, ledger.EventPayment, payment.EventType)
}

func TestService_Edit(t *testing.T) {
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	reversedAt := time.Date(2025, 2, 2, 12, 0, 0, 0, time.UTC)

	params := ledger.EditParams{
		Amount:      decimal.NewFromFloat(19.50),
		EventType:   ledger.EventPayment,
		PaymentDate: date,
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		repo.EXPECT().GetTransaction(gomock.Any(), int64(10)).Return(&ledger.Transaction{
			ID:          10,
			CustomerID:  1,
			Amount:      decimal.NewFromInt(100),
			EventType:   ledger.EventDebt,
			PaymentDate: date.AddDate(0, 0, -3),
		}, nil)
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Edit(context.Background(), 10, params)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.ID)
		assert.Equal(t, ledger.EventPayment, got.EventType)
		assert.True(t, got.Amount.Equal(params.Amount))
		assert.Equal(t, date, got.PaymentDate)
	})

	t.Run("ReversedTarget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		repo.EXPECT().GetTransaction(gomock.Any(), int64(10)).Return(&ledger.Transaction{
			ID:         10,
			CustomerID: 1,
			Amount:     decimal.NewFromInt(100),
			EventType:  ledger.EventDebt,
			ReversedAt: &reversedAt,
		}, nil)

		got, err := svc.Edit(context.Background(), 10, params)
		assert.ErrorIs(t, err, apperr.ErrAlreadyReversed)
		assert.Nil(t, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		repo.EXPECT().GetTransaction(gomock.Any(), int64(77)).Return(nil, apperr.ErrNotFound)

		_, err := svc.Edit(context.Background(), 77, params)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		_, err := svc.Edit(context.Background(), 10, ledger.EditParams{
			Amount:      decimal.Zero,
			EventType:   ledger.EventDebt,
			PaymentDate: date,
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("LostRaceAgainstReverse", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		repo.EXPECT().GetTransaction(gomock.Any(), int64(10)).Return(&ledger.Transaction{
			ID:        10,
			Amount:    decimal.NewFromInt(100),
			EventType: ledger.EventDebt,
		}, nil)
		// The conditional UPDATE touched nothing because a reverse landed in
		// between the read and the write.
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(apperr.ErrAlreadyReversed)

		_, err := svc.Edit(context.Background(), 10, params)
		assert.ErrorIs(t, err, apperr.ErrAlreadyReversed)
	})
}

func TestService_Reverse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		repo.EXPECT().ReverseTransaction(gomock.Any(), int64(5), gomock.Any()).Return(nil)

		require.NoError(t, svc.Reverse(context.Background(), 5))
	})

	t.Run("AlreadyReversed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

		repo.EXPECT().ReverseTransaction(gomock.Any(), int64(5), gomock.Any()).Return(apperr.ErrAlreadyReversed)

		assert.ErrorIs(t, svc.Reverse(context.Background(), 5), apperr.ErrAlreadyReversed)
	})
}

func TestService_Recent_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

	repo.EXPECT().RecentTransactions(gomock.Any(), 10).Return(nil, nil)

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
}

func TestService_List_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCustomerDirectory(ctrl))

	repo.EXPECT().ListTransactions(gomock.Any(), ledger.ListFilter{}).Return(nil, errors.New("db error"))

	_, err := svc.List(context.Background(), ledger.ListFilter{})
	assert.Error(t, err)
}
