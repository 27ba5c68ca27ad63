package repositories

// RepositoryProvider holds instances of all the repositories. JournalRepo is
// nil when the probed ledger shape keeps no journal headers.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	AccountRepo     AccountRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	CategoryMapRepo KeyValueStore
	ImportBatchRepo ImportBatchRepositoryFacade
	PostingStore    PostingStore
	JournalRepo     JournalReader
}
