package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliyevq/veresiye/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Description string
	Address     *string
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	Description *string
	Address     *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}

	c := &Customer{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Address:     params.Address,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
		}

		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Description != nil {
		c.Description = *params.Description
	}

	if params.Address != nil {
		c.Address = params.Address
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the customer and, through the schema's cascade, every
// transaction they own.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}
