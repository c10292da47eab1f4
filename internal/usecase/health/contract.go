package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that the product search index exists.
type IndexChecker interface {
	IndexExists(ctx context.Context, indexName string) (bool, error)
}
