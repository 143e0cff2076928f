package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return nil, errors.New("invalid expense_date")
	}
	e := &model.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: date,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: create expense: %v", ErrStoreUnavailable, err)
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("expense not found")
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		date, err := time.Parse("2006-01-02", *req.ExpenseDate)
		if err != nil {
			return nil, errors.New("invalid expense_date")
		}
		e.ExpenseDate = date
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: update expense: %v", ErrStoreUnavailable, err)
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("expense not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	expenses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		Description: e.Description,
	}
}
