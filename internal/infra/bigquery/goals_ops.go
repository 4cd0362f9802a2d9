package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	bq "github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/domain"
	"google.golang.org/api/iterator"
)

// ListGoalsWithClient returns all of a user's goals using the provided
// BigQuery client.
func ListGoalsWithClient(ctx context.Context, client *bigquery.Client, dataset, userID string) ([]domain.Goal, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			goal_id,
			user_id,
			name,
			target_amount,
			current_amount,
			status,
			start_date,
			end_date
		FROM %s
		WHERE user_id = @user_id
		ORDER BY goal_id
	`, tableRef(dataset, goalsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListGoals: query read: %w", err)
	}

	var goals []domain.Goal
	for {
		var r bq.GoalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListGoals: iter next: %w", err)
		}
		g, err := GoalFromRow(&r)
		if err != nil {
			return nil, fmt.Errorf("ListGoals: %w", err)
		}
		goals = append(goals, g)
	}

	return goals, nil
}
