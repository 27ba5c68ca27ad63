package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/core/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/importer"
)

// MockImportBatchRepository is a mock type for the ImportBatchRepositoryFacade interface
type MockImportBatchRepository struct {
	mock.Mock
}

func (m *MockImportBatchRepository) SaveBatch(ctx context.Context, batch domain.ImportBatch, rows []domain.StagedRow) error {
	args := m.Called(ctx, batch, rows)
	return args.Error(0)
}

func (m *MockImportBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.ImportBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportBatch), args.Error(1)
}

func (m *MockImportBatchRepository) FindRowsByBatchID(ctx context.Context, batchID string) ([]domain.StagedRow, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagedRow), args.Error(1)
}

func (m *MockImportBatchRepository) MarkCommitted(ctx context.Context, batchID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, batchID, updatedBy, at)
	return args.Error(0)
}

// MockTransactionReader is a mock type for the TransactionReader interface
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FindAll(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) FindByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) FindInDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockTransactionSvc is a mock type for the TransactionSvcFacade interface
type MockTransactionSvc struct {
	mock.Mock
}

func (m *MockTransactionSvc) CreateWithPosting(ctx context.Context, req dto.CreateTransactionRequest, source, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, source, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) UpdateWithPosting(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) Delete(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionSvc) GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) List(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---

type ImportServiceTestSuite struct {
	suite.Suite
	mockBatches *MockImportBatchRepository
	mockReader  *MockTransactionReader
	mockTxnSvc  *MockTransactionSvc
	service     portssvc.ImportSvcFacade

	accountID string
	userID    string
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockBatches = new(MockImportBatchRepository)
	suite.mockReader = new(MockTransactionReader)
	suite.mockTxnSvc = new(MockTransactionSvc)
	suite.service = services.NewImportService(
		importer.DefaultRegistry(),
		services.NewDuplicateDetector(),
		suite.mockBatches,
		suite.mockReader,
		suite.mockTxnSvc,
	)
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ImportServiceTestSuite) TestPreview_StagesRowsAndFlagsDuplicates() {
	ctx := context.Background()
	csvFile := strings.Join([]string{
		"Date,Amount,Description",
		"2024-01-15,-42.50,Coffee Shop",
		"2024-01-16,-9.99,Parking",
	}, "\n")

	existing := []domain.Transaction{existingTransaction("2024-01-15", "42.50", "Coffee Shop")}
	suite.mockReader.On("FindInDateRange", ctx,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)).Return(existing, nil)
	suite.mockBatches.On("SaveBatch", ctx, mock.Anything, mock.Anything).Return(nil)

	resp, err := suite.service.Preview(ctx, "csv", "statement.csv", strings.NewReader(csvFile), suite.accountID, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "csv", resp.Format)
	assert.Equal(suite.T(), 1, resp.Duplicates)
	assert.Len(suite.T(), resp.Rows, 2)
	assert.True(suite.T(), resp.Rows[0].Duplicate)
	assert.False(suite.T(), resp.Rows[1].Duplicate)
	assert.Equal(suite.T(), 1, resp.Rows[0].RowOrder)
	suite.mockBatches.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestPreview_UnknownFormatRejected() {
	ctx := context.Background()
	_, err := suite.service.Preview(ctx, "xlsx", "book.xlsx", strings.NewReader(""), suite.accountID, suite.userID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ImportServiceTestSuite) stagedBatch(status domain.ImportBatchStatus) (*domain.ImportBatch, []domain.StagedRow) {
	batch := &domain.ImportBatch{
		BatchID:   uuid.NewString(),
		AccountID: suite.accountID,
		Format:    "csv",
		Status:    status,
	}
	rows := []domain.StagedRow{
		{
			RowID:    uuid.NewString(),
			BatchID:  batch.BatchID,
			RowOrder: 1,
			Record: domain.RawImportRecord{
				Date:        "2024-01-15",
				Amount:      decimal.RequireFromString("-42.50"),
				Type:        domain.TypeExpense,
				Description: "Coffee Shop",
			},
		},
		{
			RowID:    uuid.NewString(),
			BatchID:  batch.BatchID,
			RowOrder: 2,
			Record: domain.RawImportRecord{
				Date:        "2024-01-16",
				Amount:      decimal.RequireFromString("-9.99"),
				Type:        domain.TypeExpense,
				Description: "Parking",
			},
		},
	}
	return batch, rows
}

func (suite *ImportServiceTestSuite) TestCommit_CreatesAcceptedSkipsMarked() {
	ctx := context.Background()
	batch, rows := suite.stagedBatch(domain.BatchPreviewed)

	suite.mockBatches.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil)
	suite.mockBatches.On("FindRowsByBatchID", ctx, batch.BatchID).Return(rows, nil)
	suite.mockBatches.On("MarkCommitted", ctx, batch.BatchID, suite.userID, mock.Anything).Return(nil)

	var captured dto.CreateTransactionRequest
	suite.mockTxnSvc.On("CreateWithPosting", ctx, mock.Anything, domain.SourceImport, suite.userID).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.CreateTransactionRequest)
		}).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil)

	resp, err := suite.service.Commit(ctx, dto.CommitImportRequest{
		BatchID: batch.BatchID,
		Rows: []dto.CommitImportRow{
			{RowID: rows[0].RowID},
			{RowID: rows[1].RowID, Skip: true},
		},
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, resp.Created)
	assert.Equal(suite.T(), 1, resp.Skipped)
	// The imported amount is stored unsigned; the type carries the direction.
	assert.True(suite.T(), captured.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(suite.T(), "EXPENSE", captured.Type)
	assert.Equal(suite.T(), suite.accountID, *captured.AccountID)
	suite.mockTxnSvc.AssertNumberOfCalls(suite.T(), "CreateWithPosting", 1)
}

func (suite *ImportServiceTestSuite) TestCommit_OverridesApplied() {
	ctx := context.Background()
	batch, rows := suite.stagedBatch(domain.BatchPreviewed)
	categoryID := uuid.NewString()
	newAmount := decimal.RequireFromString("45.00")

	suite.mockBatches.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil)
	suite.mockBatches.On("FindRowsByBatchID", ctx, batch.BatchID).Return(rows[:1], nil)
	suite.mockBatches.On("MarkCommitted", ctx, batch.BatchID, suite.userID, mock.Anything).Return(nil)

	var captured dto.CreateTransactionRequest
	suite.mockTxnSvc.On("CreateWithPosting", ctx, mock.Anything, domain.SourceImport, suite.userID).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.CreateTransactionRequest)
		}).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil)

	_, err := suite.service.Commit(ctx, dto.CommitImportRequest{
		BatchID: batch.BatchID,
		Rows: []dto.CommitImportRow{
			{
				RowID:       rows[0].RowID,
				Date:        "2024-01-20",
				Amount:      &newAmount,
				Description: "Coffee beans",
				CategoryID:  &categoryID,
			},
		},
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2024-01-20", captured.Date)
	assert.Equal(suite.T(), "Coffee beans", captured.Description)
	assert.True(suite.T(), captured.Amount.Equal(newAmount))
	assert.Equal(suite.T(), categoryID, *captured.CategoryID)
}

func (suite *ImportServiceTestSuite) TestCommit_AlreadyCommittedConflicts() {
	ctx := context.Background()
	batch, _ := suite.stagedBatch(domain.BatchCommitted)

	suite.mockBatches.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil)

	_, err := suite.service.Commit(ctx, dto.CommitImportRequest{BatchID: batch.BatchID}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockBatches.AssertNotCalled(suite.T(), "MarkCommitted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ImportServiceTestSuite) TestCommit_UnknownRowRejected() {
	ctx := context.Background()
	batch, rows := suite.stagedBatch(domain.BatchPreviewed)

	suite.mockBatches.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil)
	suite.mockBatches.On("FindRowsByBatchID", ctx, batch.BatchID).Return(rows, nil)

	_, err := suite.service.Commit(ctx, dto.CommitImportRequest{
		BatchID: batch.BatchID,
		Rows:    []dto.CommitImportRow{{RowID: uuid.NewString()}},
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
