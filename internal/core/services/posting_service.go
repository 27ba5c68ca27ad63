package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
	"github.com/orgbooks-dev/orgbooks/internal/utils/accounting"
)

var (
	// ErrMissingOffsetAccount is returned when no offset account can be
	// resolved for a posting line, from neither the split override nor the
	// category offset map. Postings never fall back to a placeholder account.
	ErrMissingOffsetAccount = errors.New("no offset account resolved for transaction")

	// ErrMissingCashAccount is returned when the transaction names no
	// cash/bank account to balance against.
	ErrMissingCashAccount = errors.New("transaction has no cash/bank account")

	// ErrSameTransferAccounts is returned when a transfer names the same
	// account on both sides.
	ErrSameTransferAccounts = errors.New("transfer source and destination accounts must differ")

	// ErrJournalReadsUnsupported is returned for journal read operations
	// when the active ledger schema keeps no journal headers.
	ErrJournalReadsUnsupported = errors.New("journal reads are not supported by the active ledger schema")
)

// allocation is one resolved posting leg before it becomes a journal line:
// an offset account plus the portion of the transaction it carries.
type allocation struct {
	offsetAccountID string
	categoryID      *string
	amount          decimal.Decimal
	notes           string
}

type postingService struct {
	store       portsrepo.PostingStore
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountReader
	categoryMap portssvc.CategoryMapSvcFacade
}

// NewPostingService creates the posting engine over the active ledger store.
// journalRepo may be nil when the store's shape keeps no journal headers.
func NewPostingService(store portsrepo.PostingStore, journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountReader, categoryMap portssvc.CategoryMapSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		store:       store,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		categoryMap: categoryMap,
	}
}

func (s *postingService) PostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateTransaction(txn); err != nil {
		return nil, err
	}
	if err := splits.Validate(txn.Amount); err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), apperrors.ErrValidation)
	}

	allocations, total, err := s.resolveAllocations(ctx, txn, splits)
	if err != nil {
		logger.Warn("posting allocation failed", "transactionID", txn.TransactionID, "error", err)
		return nil, err
	}

	journal, err := s.buildJournal(ctx, txn, allocations, total, source, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.PostJournal(ctx, *journal, journal.Lines); err != nil {
		logger.Error("failed to persist journal", "journalID", journal.JournalID, "error", err)
		return nil, fmt.Errorf("failed to persist journal: %w", err)
	}
	logger.Info("transaction posted",
		"transactionID", txn.TransactionID,
		"journalID", journal.JournalID,
		"lines", len(journal.Lines),
		"shape", s.store.Shape())
	return journal, nil
}

func (s *postingService) RepostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error) {
	if err := s.store.DeletePostingsForTransaction(ctx, txn.TransactionID); err != nil {
		return nil, fmt.Errorf("failed to remove prior postings: %w", err)
	}
	return s.PostTransaction(ctx, txn, splits, source, userID)
}

func (s *postingService) UnpostTransaction(ctx context.Context, transactionID string) error {
	if err := s.store.DeletePostingsForTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to remove postings: %w", err)
	}
	return nil
}

func (s *postingService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	if s.journalRepo == nil {
		return nil, apperrors.NewAppError(409, ErrJournalReadsUnsupported.Error(), ErrJournalReadsUnsupported)
	}
	return s.journalRepo.FindJournalByID(ctx, journalID)
}

func (s *postingService) ListJournalsByTransaction(ctx context.Context, transactionID string) ([]domain.Journal, error) {
	if s.journalRepo == nil {
		return nil, apperrors.NewAppError(409, ErrJournalReadsUnsupported.Error(), ErrJournalReadsUnsupported)
	}
	return s.journalRepo.FindJournalsByTransactionID(ctx, transactionID)
}

func (s *postingService) validateTransaction(txn domain.Transaction) error {
	if !domain.ValidTransactionType(txn.Type) {
		return apperrors.NewAppError(400, fmt.Sprintf("invalid transaction type: %q", txn.Type), apperrors.ErrValidation)
	}
	if !txn.Amount.IsPositive() {
		return apperrors.NewAppError(400, "transaction amount must be positive", apperrors.ErrValidation)
	}
	if txn.AccountID == nil || *txn.AccountID == "" {
		return apperrors.NewAppError(400, ErrMissingCashAccount.Error(), ErrMissingCashAccount)
	}
	if txn.Type == domain.TypeTransfer {
		if txn.ToAccountID == nil || *txn.ToAccountID == "" {
			return apperrors.NewAppError(400, "transfer requires a destination account", apperrors.ErrValidation)
		}
		if *txn.ToAccountID == *txn.AccountID {
			return apperrors.NewAppError(400, ErrSameTransferAccounts.Error(), ErrSameTransferAccounts)
		}
	}
	return nil
}

// resolveAllocations turns the split set (or the whole transaction when no
// splits are given) into posting legs with a concrete offset account each.
// Resolution order per leg: split override, then transfer destination, then
// the category offset map. An unresolved leg fails the whole posting.
func (s *postingService) resolveAllocations(ctx context.Context, txn domain.Transaction, splits domain.SplitSet) ([]allocation, decimal.Decimal, error) {
	effective := splits
	if len(effective) == 0 {
		effective = domain.SplitSet{{
			CategoryID: stringOrEmpty(txn.CategoryID),
			Amount:     txn.Amount,
		}}
	}

	allocations := make([]allocation, 0, len(effective))
	total := decimal.Zero
	for _, sp := range effective {
		offsetID := ""
		switch {
		case sp.OffsetAccountID != nil && *sp.OffsetAccountID != "":
			offsetID = *sp.OffsetAccountID
		case txn.Type == domain.TypeTransfer:
			offsetID = *txn.ToAccountID
		case sp.CategoryID != "":
			resolved, err := s.categoryMap.OffsetAccountFor(ctx, sp.CategoryID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, decimal.Zero, apperrors.NewAppError(422,
						fmt.Sprintf("no offset account mapped for category %q", sp.CategoryID), ErrMissingOffsetAccount)
				}
				return nil, decimal.Zero, fmt.Errorf("failed to resolve offset account: %w", err)
			}
			offsetID = resolved
		}
		if offsetID == "" {
			return nil, decimal.Zero, apperrors.NewAppError(422, ErrMissingOffsetAccount.Error(), ErrMissingOffsetAccount)
		}

		var categoryID *string
		if sp.CategoryID != "" {
			cid := sp.CategoryID
			categoryID = &cid
		}
		allocations = append(allocations, allocation{
			offsetAccountID: offsetID,
			categoryID:      categoryID,
			amount:          sp.Amount,
			notes:           sp.Notes,
		})
		total = total.Add(sp.Amount)
	}
	return allocations, total, nil
}

// buildJournal assembles the double-entry lines. Expense and asset purchases
// debit the offset accounts and credit the cash account; income credits the
// offsets and debits cash; transfers debit the destination and credit the
// source. The balancing line always carries the split total.
func (s *postingService) buildJournal(ctx context.Context, txn domain.Transaction, allocations []allocation, total decimal.Decimal, source, userID string) (*domain.Journal, error) {
	if err := s.checkAccountsActive(ctx, txn, allocations); err != nil {
		return nil, err
	}

	now := time.Now()
	journal := &domain.Journal{
		JournalID:     uuid.NewString(),
		JournalDate:   txn.Date,
		Memo:          txn.Description,
		Source:        source,
		SourceSystem:  txn.ReferenceNo,
		TransactionID: &txn.TransactionID,
		Status:        domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	offsetDebits := txn.Type == domain.TypeExpense || txn.Type == domain.TypeAsset || txn.Type == domain.TypeTransfer
	lines := make([]domain.JournalLine, 0, len(allocations)+1)
	order := 1
	for _, a := range allocations {
		line := domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journal.JournalID,
			AccountID:   a.offsetAccountID,
			CategoryID:  a.categoryID,
			Description: a.notes,
			LineOrder:   order,
			AuditFields: journal.AuditFields,
		}
		if offsetDebits {
			line.Debit = a.amount
			line.Credit = decimal.Zero
		} else {
			line.Debit = decimal.Zero
			line.Credit = a.amount
		}
		lines = append(lines, line)
		order++
	}

	balancing := domain.JournalLine{
		LineID:      uuid.NewString(),
		JournalID:   journal.JournalID,
		AccountID:   *txn.AccountID,
		Description: txn.Description,
		LineOrder:   order,
		AuditFields: journal.AuditFields,
	}
	if offsetDebits {
		balancing.Debit = decimal.Zero
		balancing.Credit = total
	} else {
		balancing.Debit = total
		balancing.Credit = decimal.Zero
	}
	lines = append(lines, balancing)

	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return nil, apperrors.NewAppError(422, err.Error(), err)
	}
	journal.Lines = lines
	return journal, nil
}

func (s *postingService) checkAccountsActive(ctx context.Context, txn domain.Transaction, allocations []allocation) error {
	ids := map[string]struct{}{*txn.AccountID: {}}
	for _, a := range allocations {
		ids[a.offsetAccountID] = struct{}{}
	}
	wanted := make([]string, 0, len(ids))
	for id := range ids {
		wanted = append(wanted, id)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, wanted)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range wanted {
		acct, ok := accounts[id]
		if !ok {
			return apperrors.NewAppError(404, fmt.Sprintf("account %q not found", id), apperrors.ErrNotFound)
		}
		if !acct.IsActive {
			return apperrors.NewAppError(422, fmt.Sprintf("account %q is inactive", id), apperrors.ErrValidation)
		}
	}
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
