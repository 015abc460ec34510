package dao

import (
	"time"

	"gorm.io/gorm"
)

// Sort keys pass through a fixed per-entity allow-list; anything else falls
// back to the entity default. ORDER BY text is only ever composed from the
// map values, never from caller input.
func orderClause(allowed map[string]string, def, sort, order string) string {
	col, ok := allowed[sort]
	if !ok {
		col = def
	}
	if order == "DESC" {
		return col + " DESC"
	}
	return col + " ASC"
}

// applyWindow adds OFFSET/LIMIT only when the caller supplied at least one
// bound. A negative start clamps to 0; a limit below 1 clamps to the entity
// default. Both nil means the unbounded result set.
func applyWindow(q *gorm.DB, start, limit *int, defLimit int) *gorm.DB {
	if start == nil && limit == nil {
		return q
	}
	s := 0
	if start != nil && *start > 0 {
		s = *start
	}
	l := defLimit
	if limit != nil && *limit >= 1 {
		l = *limit
	}
	return q.Offset(s).Limit(l)
}

// dayRange narrows a timestamp column to one calendar day. An unparseable
// date matches nothing, same as DATE('garbage') = NULL in the old SQL.
func dayRange(q *gorm.DB, column, day string) *gorm.DB {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return q.Where("1 = 0")
	}
	return q.Where(column+" >= ? AND "+column+" < ?", d, d.AddDate(0, 0, 1))
}
