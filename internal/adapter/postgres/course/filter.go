package course

import (
	"github.com/Masterminds/squirrel"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// builder produces $n placeholders for pgx.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// dateColumns is the allow-list of columns a date range may target.
var dateColumns = map[domain.DateField]string{
	domain.DateFieldCreatedAt: "c.created_at",
	domain.DateFieldDueDate:   "c.due_date",
}

// Predicates translates criteria into SQL conditions over the courses table
// aliased as c. Every returned condition is meant to be ANDed. Both the
// course listing and bulk selection go through here so the two can never
// select different rows for the same criteria.
func Predicates(cr domain.Criteria) []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer

	if cr.Status != nil {
		preds = append(preds, squirrel.Eq{"c.status": string(*cr.Status)})
	}
	if cr.Priority != nil {
		preds = append(preds, squirrel.Eq{"c.priority": string(*cr.Priority)})
	}
	// uuid.UUID is an array kind; squirrel.Eq would expand it into an IN list.
	if cr.OwnerID != nil {
		preds = append(preds, squirrel.Expr("c.owner_id = ?", *cr.OwnerID))
	}
	if len(cr.IDs) > 0 {
		preds = append(preds, squirrel.Expr("c.id = ANY(?::uuid[])", cr.IDs))
	}
	if dr := cr.DateRange; dr != nil {
		col, ok := dateColumns[dr.Field]
		if ok {
			if dr.From != nil {
				preds = append(preds, squirrel.GtOrEq{col: *dr.From})
			}
			if dr.To != nil {
				preds = append(preds, squirrel.LtOrEq{col: *dr.To})
			}
		}
	}

	return preds
}

// whereCriteria applies the criteria predicates to a select. An empty
// predicate list leaves the query unconstrained; callers guard against that.
func whereCriteria(q squirrel.SelectBuilder, cr domain.Criteria) squirrel.SelectBuilder {
	preds := Predicates(cr)
	if len(preds) == 0 {
		return q
	}
	return q.Where(squirrel.And(preds))
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
