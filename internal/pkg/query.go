package pkg

import (
	"encoding/json"
	"regexp"
	"slices"
	"strings"

	"gorm.io/gorm"
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Op is a comparison used by a Cond.
type Op int

const (
	// OpEq is column = value.
	OpEq Op = iota
	// OpContains matches a JSON-encoded string list column containing value.
	OpContains
	// OpGTE is column >= value.
	OpGTE
)

// Cond is a single column predicate.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

// Order is one ORDER BY key. With NullsLast set, NULL values sort after all
// others in either direction, the same on every dialect.
type Order struct {
	Column    string
	Desc      bool
	NullsLast bool
}

// Asc orders by column ascending.
func Asc(column string) Order { return Order{Column: column} }

// Desc orders by column descending.
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Last returns o with NULL values placed after every other value.
func (o Order) Last() Order {
	o.NullsLast = true
	return o
}

// Search is a case-insensitive substring match OR-ed across columns.
type Search struct {
	Term    string
	Columns []string
}

// Query is a storage-neutral description of a filtered, ordered listing.
// Builder methods return a modified copy; the receiver is never mutated.
type Query struct {
	Conds  []Cond
	Search *Search
	Orders []Order
}

// Eq adds column = value.
func (q Query) Eq(column string, value any) Query {
	q.Conds = append(slices.Clone(q.Conds), Cond{Column: column, Op: OpEq, Value: value})
	return q
}

// Contains adds a list-membership predicate on a JSON string list column.
func (q Query) Contains(column, value string) Query {
	q.Conds = append(slices.Clone(q.Conds), Cond{Column: column, Op: OpContains, Value: value})
	return q
}

// AtLeast adds column >= value.
func (q Query) AtLeast(column string, value any) Query {
	q.Conds = append(slices.Clone(q.Conds), Cond{Column: column, Op: OpGTE, Value: value})
	return q
}

// Match sets the free-text search. An empty term is a no-op.
func (q Query) Match(term string, columns ...string) Query {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	q.Search = &Search{Term: term, Columns: slices.Clone(columns)}
	return q
}

// OrderBy replaces the sort keys.
func (q Query) OrderBy(orders ...Order) Query {
	q.Orders = slices.Clone(orders)
	return q
}

// Where returns a GORM scope applying the query's conditions and search.
// Column names are validated against a strict pattern; invalid ones are skipped.
func Where(q Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range q.Conds {
			if !validFieldName.MatchString(c.Column) {
				continue
			}
			switch c.Op {
			case OpEq:
				db = db.Where(c.Column+" = ?", c.Value)
			case OpGTE:
				db = db.Where(c.Column+" >= ?", c.Value)
			case OpContains:
				s, _ := c.Value.(string)
				db = db.Where(c.Column+` LIKE ? ESCAPE '\'`, "%"+escapeLike(jsonString(s))+"%")
			}
		}
		if q.Search != nil {
			pattern := "%" + escapeLike(strings.ToLower(q.Search.Term)) + "%"
			var clauses []string
			var args []any
			for _, col := range q.Search.Columns {
				if !validFieldName.MatchString(col) {
					continue
				}
				clauses = append(clauses, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
				args = append(args, pattern)
			}
			if len(clauses) > 0 {
				db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
			}
		}
		return db
	}
}

// Sort returns a GORM scope applying the query's ORDER BY keys.
func Sort(q Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, o := range q.Orders {
			if !validFieldName.MatchString(o.Column) {
				continue
			}
			if o.NullsLast {
				db = db.Order(o.Column + " IS NULL")
			}
			dir := " ASC"
			if o.Desc {
				dir = " DESC"
			}
			db = db.Order(o.Column + dir)
		}
		return db
	}
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// jsonString renders s the way it appears inside a JSON-encoded list.
func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `"` + s + `"`
	}
	return string(b)
}
