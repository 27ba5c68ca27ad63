package services

import (
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/importer"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The posting engine is built over whichever
// posting store the repository provider wired after the schema probe.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.CategoryMap = NewCategoryMapService(repos.CategoryMapRepo, repos.AccountRepo)

	container.Posting = NewPostingService(
		repos.PostingStore,
		repos.JournalRepo,
		repos.AccountRepo,
		container.CategoryMap,
	)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Posting)
	container.Import = NewImportService(
		importer.DefaultRegistry(),
		NewDuplicateDetector(),
		repos.ImportBatchRepo,
		repos.TransactionRepo,
		container.Transaction,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PostingSvcFacade     = (*postingService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ImportSvcFacade      = (*importService)(nil)
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.CategoryMapSvcFacade = (*categoryMapService)(nil)
)
