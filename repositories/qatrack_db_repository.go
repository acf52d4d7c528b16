package repositories

// QaDbRepository carries every repository method over the application
// database. It is stateless; the Executor passed to each method decides
// whether it runs on the pool or inside a transaction.
type QaDbRepository struct{}

func NewQaDbRepository() *QaDbRepository {
	return &QaDbRepository{}
}
