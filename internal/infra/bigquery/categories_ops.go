package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	bq "github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/domain"
	"google.golang.org/api/iterator"
)

// ListCategoriesWithClient returns all of a user's categories ordered by name
// using the provided BigQuery client. Inactive categories are included; the
// budget calculator skips them itself.
func ListCategoriesWithClient(ctx context.Context, client *bigquery.Client, dataset, userID string) ([]domain.Category, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
		  category_id,
		  user_id,
		  name,
		  budget_amount,
		  budget_period,
		  is_active
		FROM %s
		WHERE user_id = @user_id
		ORDER BY name, category_id
	`, tableRef(dataset, categoriesTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: query read: %w", err)
	}

	var categories []domain.Category
	for {
		var r bq.CategoryRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListCategories: iter next: %w", err)
		}
		c, err := CategoryFromRow(&r)
		if err != nil {
			return nil, fmt.Errorf("ListCategories: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, nil
}
