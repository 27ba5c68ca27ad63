package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/core/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	MockTransactionReader
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// MockPostingSvc is a mock type for the PostingSvc interface
type MockPostingSvc struct {
	mock.Mock
}

func (m *MockPostingSvc) PostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, txn, splits, source, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockPostingSvc) RepostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, txn, splits, source, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockPostingSvc) UnpostTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockTransactionRepository
	mockPosting *MockPostingSvc
	service     portssvc.TransactionSvcFacade

	accountID string
	userID    string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockPosting = new(MockPostingSvc)
	suite.service = services.NewTransactionService(suite.mockRepo, suite.mockPosting)
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) createRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Date:        "2024-03-10",
		Type:        "EXPENSE",
		Amount:      decimal.RequireFromString("125.40"),
		Description: "Office supplies",
		AccountID:   &suite.accountID,
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateWithPosting_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	var created domain.Transaction
	suite.mockRepo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.Transaction)
		}).Return(nil)
	suite.mockPosting.On("PostTransaction", ctx, mock.Anything, domain.SplitSet(nil), domain.SourceAPI, suite.userID).
		Return(&domain.Journal{JournalID: uuid.NewString()}, nil)

	txn, err := suite.service.CreateWithPosting(ctx, req, domain.SourceAPI, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), txn.TransactionID)
	assert.Equal(suite.T(), txn.TransactionID, created.TransactionID)
	assert.Equal(suite.T(), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Equal(suite.T(), suite.userID, created.CreatedBy)
	suite.mockRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateWithPosting_RollsBackWhenPostingFails() {
	ctx := context.Background()
	req := suite.createRequest()
	postErr := errors.New("no offset account")

	suite.mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	suite.mockPosting.On("PostTransaction", ctx, mock.Anything, domain.SplitSet(nil), domain.SourceAPI, suite.userID).
		Return(nil, postErr)
	suite.mockRepo.On("Delete", ctx, mock.Anything).Return(nil)

	_, err := suite.service.CreateWithPosting(ctx, req, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, postErr)
	suite.mockRepo.AssertCalled(suite.T(), "Delete", ctx, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateWithPosting_Reposts() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy: "someone-else",
		},
	}
	req := suite.createRequest()

	suite.mockRepo.On("FindByID", ctx, transactionID).Return(existing, nil)
	var updated domain.Transaction
	suite.mockRepo.On("Update", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Transaction)
		}).Return(nil)
	suite.mockPosting.On("RepostTransaction", ctx, mock.Anything, domain.SplitSet(nil), domain.SourceAPI, suite.userID).
		Return(&domain.Journal{JournalID: uuid.NewString()}, nil)

	txn, err := suite.service.UpdateWithPosting(ctx, transactionID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), transactionID, txn.TransactionID)
	// Creation audit fields survive an update.
	assert.Equal(suite.T(), "someone-else", updated.CreatedBy)
	assert.Equal(suite.T(), suite.userID, updated.LastUpdatedBy)
}

func (suite *TransactionServiceTestSuite) TestDelete_UnpostsFirst() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockRepo.On("FindByID", ctx, transactionID).
		Return(&domain.Transaction{TransactionID: transactionID}, nil)
	suite.mockPosting.On("UnpostTransaction", ctx, transactionID).Return(nil)
	suite.mockRepo.On("Delete", ctx, transactionID).Return(nil)

	err := suite.service.Delete(ctx, transactionID)

	assert.NoError(suite.T(), err)
	suite.mockPosting.AssertCalled(suite.T(), "UnpostTransaction", ctx, transactionID)
	suite.mockRepo.AssertCalled(suite.T(), "Delete", ctx, transactionID)
}

func (suite *TransactionServiceTestSuite) TestList_BuildsFilterFromParams() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{
		DateFrom: "2024-01-01",
		DateTo:   "2024-01-31",
		Type:     "EXPENSE",
		Search:   "coffee",
		Limit:    50,
	}

	var captured portsrepo.TransactionFilter
	suite.mockRepo.On("FindAll", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.TransactionFilter)
		}).Return([]domain.Transaction{}, nil)

	_, err := suite.service.List(ctx, params)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *captured.DateFrom)
	assert.Equal(suite.T(), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *captured.DateTo)
	assert.Equal(suite.T(), domain.TypeExpense, *captured.Type)
	assert.Equal(suite.T(), "coffee", captured.Search)
	assert.Equal(suite.T(), 50, captured.Limit)
	assert.Nil(suite.T(), captured.CategoryID)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
