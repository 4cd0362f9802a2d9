package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	bq "github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/domain"
	"google.golang.org/api/iterator"
)

// ListTransactionsWithClient returns a user's transactions dated within
// [start, end], oldest first, using the provided BigQuery client.
func ListTransactionsWithClient(ctx context.Context, client *bigquery.Client, dataset, userID string, start, end civil.Date) ([]domain.Transaction, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			transaction_id,
			user_id,
			type,
			amount,
			category_id,
			category_name,
			description,
			transaction_date,
			is_recurring,
			recurrence_interval,
			recurring_parent_id
		FROM %s
		WHERE user_id = @user_id
		  AND transaction_date >= @start_date
		  AND transaction_date <= @end_date
		ORDER BY transaction_date, transaction_id
	`, tableRef(dataset, transactionsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "start_date", Value: start},
		{Name: "end_date", Value: end},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: query read: %w", err)
	}

	var txs []domain.Transaction
	for {
		var r bq.TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: iter next: %w", err)
		}
		t, err := TransactionFromRow(&r)
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: %w", err)
		}
		txs = append(txs, t)
	}

	return txs, nil
}
