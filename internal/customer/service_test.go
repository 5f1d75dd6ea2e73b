package customer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aliyevq/veresiye/internal/apperr"
	"github.com/aliyevq/veresiye/internal/customer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   error
	}

	address := "Zabrat"

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:        "Vagif",
				Description: "regular",
				Address:     &address,
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = 4
						c.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  customer.CreateParams{Name: ""},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "WhitespaceName",
			params:  customer.CreateParams{Name: "   "},
			wantErr: apperr.ErrValidation,
		},
		{
			name:   "RepoError",
			params: customer.CreateParams{Name: "Vagif"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_Update(t *testing.T) {
	existing := func() *customer.Customer {
		return &customer.Customer{
			ID:          3,
			Name:        "hahahm",
			Description: "old note",
		}
	}

	t.Run("PartialUpdate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		svc := customer.NewService(repo)

		newDesc := "new note"

		repo.EXPECT().GetCustomer(gomock.Any(), int64(3)).Return(existing(), nil)
		repo.EXPECT().
			UpdateCustomer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *customer.Customer) error {
				assert.Equal(t, "hahahm", c.Name) // untouched
				assert.Equal(t, newDesc, c.Description)
				return nil
			})

		got, err := svc.Update(context.Background(), 3, customer.UpdateParams{Description: &newDesc})
		require.NoError(t, err)
		assert.Equal(t, newDesc, got.Description)
	})

	t.Run("EmptyNamePatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		svc := customer.NewService(repo)

		repo.EXPECT().GetCustomer(gomock.Any(), int64(3)).Return(existing(), nil)

		empty := " "
		_, err := svc.Update(context.Background(), 3, customer.UpdateParams{Name: &empty})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		svc := customer.NewService(repo)

		repo.EXPECT().GetCustomer(gomock.Any(), int64(99)).Return(nil, apperr.ErrNotFound)

		_, err := svc.Update(context.Background(), 99, customer.UpdateParams{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	repo.EXPECT().DeleteCustomer(gomock.Any(), int64(3)).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), 3))

	repo.EXPECT().DeleteCustomer(gomock.Any(), int64(99)).Return(apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), apperr.ErrNotFound)
}
