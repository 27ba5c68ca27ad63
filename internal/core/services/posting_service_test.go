package services_test

import (
	"context"
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
	"github.com/orgbooks-dev/orgbooks/internal/core/services"
)

// MockPostingStore is a mock type for the PostingStore interface
type MockPostingStore struct {
	mock.Mock
}

func (m *MockPostingStore) PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockPostingStore) DeletePostingsForTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockPostingStore) Shape() portsrepo.LedgerShape {
	args := m.Called()
	return args.Get(0).(portsrepo.LedgerShape)
}

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockCategoryMapSvc is a mock type for the CategoryMapSvcFacade interface
type MockCategoryMapSvc struct {
	mock.Mock
}

func (m *MockCategoryMapSvc) GetMap(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCategoryMapSvc) SaveMap(ctx context.Context, mappings map[string]string) error {
	args := m.Called(ctx, mappings)
	return args.Error(0)
}

func (m *MockCategoryMapSvc) OffsetAccountFor(ctx context.Context, categoryID string) (string, error) {
	args := m.Called(ctx, categoryID)
	return args.String(0), args.Error(1)
}

// --- Test Suite Setup ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockStore    *MockPostingStore
	mockAccounts *MockAccountReader
	mockMap      *MockCategoryMapSvc
	service      interface {
		PostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error)
		RepostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error)
		UnpostTransaction(ctx context.Context, transactionID string) error
	}

	cashAccountID   string
	offsetAccountID string
	categoryID      string
	userID          string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockStore = new(MockPostingStore)
	suite.mockAccounts = new(MockAccountReader)
	suite.mockMap = new(MockCategoryMapSvc)
	suite.service = services.NewPostingService(suite.mockStore, nil, suite.mockAccounts, suite.mockMap)

	suite.cashAccountID = uuid.NewString()
	suite.offsetAccountID = uuid.NewString()
	suite.categoryID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PostingServiceTestSuite) activeAccounts(ids ...string) map[string]domain.Account {
	out := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		out[id] = domain.Account{AccountID: id, IsActive: true, AccountType: domain.Asset}
	}
	return out
}

func (suite *PostingServiceTestSuite) expenseTransaction(amount string) domain.Transaction {
	cash := suite.cashAccountID
	category := suite.categoryID
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Type:          domain.TypeExpense,
		Amount:        decimal.RequireFromString(amount),
		Description:   "Office supplies",
		AccountID:     &cash,
		CategoryID:    &category,
	}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostTransaction_ExpenseBalances() {
	ctx := context.Background()
	txn := suite.expenseTransaction("125.40")

	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).Return(suite.offsetAccountID, nil)
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.activeAccounts(suite.cashAccountID, suite.offsetAccountID), nil)

	var capturedLines []domain.JournalLine
	suite.mockStore.On("PostJournal", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil)
	suite.mockStore.On("Shape").Return(portsrepo.ShapeJournal)

	journal, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), journal)
	assert.Len(suite.T(), capturedLines, 2)

	debits, credits := decimal.Zero, decimal.Zero
	for _, line := range capturedLines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	assert.True(suite.T(), debits.Equal(credits), "journal must balance: debits %s credits %s", debits, credits)

	// Expense debits the offset account and credits the cash account.
	assert.Equal(suite.T(), suite.offsetAccountID, capturedLines[0].AccountID)
	assert.True(suite.T(), capturedLines[0].Debit.Equal(decimal.RequireFromString("125.40")))
	assert.Equal(suite.T(), suite.cashAccountID, capturedLines[1].AccountID)
	assert.True(suite.T(), capturedLines[1].Credit.Equal(decimal.RequireFromString("125.40")))
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_IncomeReversesSides() {
	ctx := context.Background()
	txn := suite.expenseTransaction("900.00")
	txn.Type = domain.TypeIncome

	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).Return(suite.offsetAccountID, nil)
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.activeAccounts(suite.cashAccountID, suite.offsetAccountID), nil)

	var capturedLines []domain.JournalLine
	suite.mockStore.On("PostJournal", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil)
	suite.mockStore.On("Shape").Return(portsrepo.ShapeJournal)

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), capturedLines[0].Credit.Equal(decimal.RequireFromString("900.00")))
	assert.True(suite.T(), capturedLines[1].Debit.Equal(decimal.RequireFromString("900.00")))
}

func (suite *PostingServiceTestSuite) TestPostTransaction_AssetDebitsOffset() {
	ctx := context.Background()
	txn := suite.expenseTransaction("300.00")
	txn.Type = domain.TypeAsset

	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).Return(suite.offsetAccountID, nil)
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.activeAccounts(suite.cashAccountID, suite.offsetAccountID), nil)

	var capturedLines []domain.JournalLine
	suite.mockStore.On("PostJournal", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil)
	suite.mockStore.On("Shape").Return(portsrepo.ShapeJournal)

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	// Asset purchases post like expenses: the acquired asset account is
	// debited, cash credited.
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), capturedLines[0].Debit.Equal(decimal.RequireFromString("300.00")))
	assert.True(suite.T(), capturedLines[1].Credit.Equal(decimal.RequireFromString("300.00")))
}

func (suite *PostingServiceTestSuite) TestPostTransaction_SplitsProduceOneLineEach() {
	ctx := context.Background()
	txn := suite.expenseTransaction("100.00")
	otherCategory := uuid.NewString()
	otherOffset := uuid.NewString()
	splits := domain.SplitSet{
		{CategoryID: suite.categoryID, Amount: decimal.RequireFromString("60.00")},
		{CategoryID: otherCategory, Amount: decimal.RequireFromString("40.00")},
	}

	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).Return(suite.offsetAccountID, nil)
	suite.mockMap.On("OffsetAccountFor", ctx, otherCategory).Return(otherOffset, nil)
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.activeAccounts(suite.cashAccountID, suite.offsetAccountID, otherOffset), nil)

	var capturedLines []domain.JournalLine
	suite.mockStore.On("PostJournal", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil)
	suite.mockStore.On("Shape").Return(portsrepo.ShapeJournal)

	_, err := suite.service.PostTransaction(ctx, txn, splits, domain.SourceAPI, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), capturedLines, 3)
	assert.True(suite.T(), capturedLines[2].Credit.Equal(decimal.RequireFromString("100.00")),
		"balancing line carries the split total")
	assert.Equal(suite.T(), 1, capturedLines[0].LineOrder)
	assert.Equal(suite.T(), 2, capturedLines[1].LineOrder)
	assert.Equal(suite.T(), 3, capturedLines[2].LineOrder)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_SplitSumMismatchRejected() {
	ctx := context.Background()
	txn := suite.expenseTransaction("100.00")
	splits := domain.SplitSet{
		{CategoryID: suite.categoryID, Amount: decimal.RequireFromString("60.00")},
		{CategoryID: suite.categoryID, Amount: decimal.RequireFromString("39.00")},
	}

	_, err := suite.service.PostTransaction(ctx, txn, splits, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockStore.AssertNotCalled(suite.T(), "PostJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_MissingOffsetMappingFails() {
	ctx := context.Background()
	txn := suite.expenseTransaction("50.00")

	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).
		Return("", apperrors.NewAppError(404, "not mapped", apperrors.ErrNotFound))

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, services.ErrMissingOffsetAccount)
	suite.mockStore.AssertNotCalled(suite.T(), "PostJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_NoCategoryNoOffsetFails() {
	ctx := context.Background()
	txn := suite.expenseTransaction("50.00")
	txn.CategoryID = nil

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, services.ErrMissingOffsetAccount)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_TransferDebitsDestination() {
	ctx := context.Background()
	destination := uuid.NewString()
	txn := suite.expenseTransaction("300.00")
	txn.Type = domain.TypeTransfer
	txn.ToAccountID = &destination
	txn.CategoryID = nil

	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.activeAccounts(suite.cashAccountID, destination), nil)

	var capturedLines []domain.JournalLine
	suite.mockStore.On("PostJournal", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil)
	suite.mockStore.On("Shape").Return(portsrepo.ShapeJournal)

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), destination, capturedLines[0].AccountID)
	assert.True(suite.T(), capturedLines[0].Debit.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(suite.T(), suite.cashAccountID, capturedLines[1].AccountID)
	assert.True(suite.T(), capturedLines[1].Credit.Equal(decimal.RequireFromString("300.00")))
}

func (suite *PostingServiceTestSuite) TestPostTransaction_TransferSameAccountRejected() {
	ctx := context.Background()
	txn := suite.expenseTransaction("300.00")
	txn.Type = domain.TypeTransfer
	txn.ToAccountID = &suite.cashAccountID

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, services.ErrSameTransferAccounts)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	txn := suite.expenseTransaction("10.00")

	accounts := suite.activeAccounts(suite.cashAccountID)
	accounts[suite.offsetAccountID] = domain.Account{AccountID: suite.offsetAccountID, IsActive: false}

	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).Return(suite.offsetAccountID, nil)
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil)

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_ZeroAmountRejected() {
	ctx := context.Background()
	txn := suite.expenseTransaction("0")

	_, err := suite.service.PostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestRepostTransaction_DeletesThenPosts() {
	ctx := context.Background()
	txn := suite.expenseTransaction("75.00")

	suite.mockStore.On("DeletePostingsForTransaction", ctx, txn.TransactionID).Return(nil)
	suite.mockMap.On("OffsetAccountFor", ctx, suite.categoryID).Return(suite.offsetAccountID, nil)
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.activeAccounts(suite.cashAccountID, suite.offsetAccountID), nil)
	suite.mockStore.On("PostJournal", ctx, mock.Anything, mock.Anything).Return(nil)
	suite.mockStore.On("Shape").Return(portsrepo.ShapeJournal)

	_, err := suite.service.RepostTransaction(ctx, txn, nil, domain.SourceAPI, suite.userID)

	assert.NoError(suite.T(), err)
	suite.mockStore.AssertCalled(suite.T(), "DeletePostingsForTransaction", ctx, txn.TransactionID)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
