package bigquery

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	bq "github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/domain"
)

// Re-export the interface from the shared package
type BudgetRepository = bq.BudgetRepository

const (
	transactionsTable = "transactions"
	categoriesTable   = "categories"
	goalsTable        = "goals"
)

// tableRef quotes dataset.table for use in a FROM clause.
func tableRef(dataset, table string) string {
	return "`" + strings.Trim(dataset, "`") + "." + table + "`"
}

// BigQueryBudgetRepository is the concrete implementation of BudgetRepository
// that reads from BigQuery. It holds a shared BigQuery client to avoid
// creating a new connection for each query.
type BigQueryBudgetRepository struct {
	client  *bigquery.Client
	dataset string
}

// NewBigQueryBudgetRepository creates a repository with its own client for
// projectID, reading tables from dataset.
func NewBigQueryBudgetRepository(ctx context.Context, projectID, dataset string) (*BigQueryBudgetRepository, error) {
	if projectID == "" {
		return nil, fmt.Errorf("NewBigQueryBudgetRepository: project id is required")
	}
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryBudgetRepository: creating client: %w", err)
	}
	return NewBigQueryBudgetRepositoryWithClient(client, dataset), nil
}

// NewBigQueryBudgetRepositoryWithClient wraps an existing client.
func NewBigQueryBudgetRepositoryWithClient(client *bigquery.Client, dataset string) *BigQueryBudgetRepository {
	return &BigQueryBudgetRepository{
		client:  client,
		dataset: dataset,
	}
}

// Close closes the BigQuery client connection. This should be called when
// the repository is no longer needed to release resources.
func (r *BigQueryBudgetRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ListTransactions delegates to ListTransactionsWithClient with the shared client.
func (r *BigQueryBudgetRepository) ListTransactions(ctx context.Context, userID string, start, end civil.Date) ([]domain.Transaction, error) {
	return ListTransactionsWithClient(ctx, r.client, r.dataset, userID, start, end)
}

// ListCategories delegates to ListCategoriesWithClient with the shared client.
func (r *BigQueryBudgetRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return ListCategoriesWithClient(ctx, r.client, r.dataset, userID)
}

// ListGoals delegates to ListGoalsWithClient with the shared client.
func (r *BigQueryBudgetRepository) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return ListGoalsWithClient(ctx, r.client, r.dataset, userID)
}
