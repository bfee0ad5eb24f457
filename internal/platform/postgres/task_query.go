package postgres

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// psql builds statements with PostgreSQL's $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var taskColumns = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"priority",
	"scheduled_at",
	"created_at",
	"completed",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// sortColumns returns the ORDER BY terms for sort. id is always the last
// term so pages are stable when the leading keys tie.
func sortColumns(sort domain.TaskSort) []string {
	switch sort {
	case domain.SortTitle:
		return []string{"title ASC", "id ASC"}
	case domain.SortDescription:
		return []string{"description ASC", "id ASC"}
	default:
		return []string{"priority DESC", "scheduled_at ASC", "completed ASC", "id ASC"}
	}
}

// BuildTaskListQuery turns ownerID and q into a SELECT statement. The owner
// predicate is always the first condition. q is normalized, so the limit
// never exceeds domain.MaxTaskLimit.
func BuildTaskListQuery(ownerID int64, q domain.TaskQuery) (string, []any, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	sb := psql.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"owner_id": ownerID})

	if q.Priority != nil {
		sb = sb.Where(squirrel.Eq{"priority": string(*q.Priority)})
	}

	if q.Date != nil {
		start, end := domain.DayRange(*q.Date)
		sb = sb.Where(squirrel.GtOrEq{"scheduled_at": start}).
			Where(squirrel.Lt{"scheduled_at": end})
	}

	if q.TitleContains != "" {
		sb = sb.Where(squirrel.ILike{"title": "%" + escapeLike(q.TitleContains) + "%"})
	}

	return sb.OrderBy(sortColumns(q.Sort)...).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset)).
		ToSql()
}
