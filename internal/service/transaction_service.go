package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/ledger"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// TransactionService handles transaction-ledger business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// GetTransactions retrieves the ledger in consolidation order, optionally
// filtered to one ticker.
func (s *TransactionService) GetTransactions(ticker string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ticker)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(id)
}

// CreateTransaction validates and persists a new buy/sell row.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Ticker:    model.NormalizeTicker(req.Ticker),
		Name:      req.Name,
		Date:      date,
		Type:      req.Type,
		Shares:    req.Shares,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction applies the provided fields to an existing row.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	if req.Ticker != nil {
		transaction.Ticker = model.NormalizeTicker(*req.Ticker)
	}
	if req.Name != nil {
		transaction.Name = *req.Name
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Shares != nil {
		transaction.Shares = *req.Shares
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction row by ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.transactionRepo.DeleteTransaction(ctx, id)
}

// GetStats consolidates the full ledger and returns its transaction counts
// and realized totals.
func (s *TransactionService) GetStats() (model.LedgerStats, error) {
	transactions, err := s.transactionRepo.GetTransactions("")
	if err != nil {
		return model.LedgerStats{}, err
	}
	result := ledger.Consolidate(transactions)
	return ledger.Stats(result.All), nil
}
