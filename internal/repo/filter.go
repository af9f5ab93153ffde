package repo

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

type operator int

const (
	opEq       operator = iota // field = @p
	opBetween                  // field BETWEEN @p AND @q
	opMemberOf                 // field IN (SELECT col FROM table WHERE key = @p)
)

// predicate is one constraint of a WHERE clause. Values are always bound as
// named parameters, never rendered into the SQL text.
type predicate struct {
	field  string
	op     operator
	values []any

	// opMemberOf only.
	table, col, key string
}

func eq(field string, v any) predicate {
	return predicate{field: field, op: opEq, values: []any{v}}
}

func between(field string, lo, hi any) predicate {
	return predicate{field: field, op: opBetween, values: []any{lo, hi}}
}

func memberOf(field, table, col, key string, v any) predicate {
	return predicate{field: field, op: opMemberOf, values: []any{v}, table: table, col: col, key: key}
}

// compileQuery appends the conjunction of preds and the ORDER BY clause to
// base. Parameters are named p1, p2, ... in the order they appear.
// With no predicates the WHERE clause is omitted.
func compileQuery(base string, preds []predicate, orderBy string) (string, pgx.NamedArgs) {
	var (
		sb      strings.Builder
		clauses = make([]string, 0, len(preds))
		args    = pgx.NamedArgs{}
	)

	bind := func(v any) string {
		name := fmt.Sprintf("p%d", len(args)+1)
		args[name] = v
		return "@" + name
	}

	for _, p := range preds {
		switch p.op {
		case opEq:
			clauses = append(clauses, fmt.Sprintf("%s = %s", p.field, bind(p.values[0])))
		case opBetween:
			lo, hi := bind(p.values[0]), bind(p.values[1])
			clauses = append(clauses, fmt.Sprintf("%s BETWEEN %s AND %s", p.field, lo, hi))
		case opMemberOf:
			clauses = append(clauses, fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = %s)",
				p.field, p.col, p.table, p.key, bind(p.values[0])))
		default:
			panic(fmt.Sprintf("repo: unknown operator %d", p.op))
		}
	}

	sb.WriteString(strings.TrimRight(base, " \t\n"))
	if len(clauses) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(clauses, "\n\t\t  AND "))
	}
	if orderBy != "" {
		sb.WriteString("\n\t\tORDER BY ")
		sb.WriteString(orderBy)
	}
	return sb.String(), args
}

// bookingPredicates turns the set fields of f into predicates over the
// booking row query. The participant filter matches bookings that contain
// the participant, so each matched booking still carries all its participants.
func bookingPredicates(f domain.BookingFilters) []predicate {
	var preds []predicate
	if f.Customer != nil {
		preds = append(preds, eq("b.customer_id", *f.Customer))
	}
	if f.Trip != nil {
		preds = append(preds, eq("b.trip_id", *f.Trip))
	}
	if f.Participant != nil {
		preds = append(preds, memberOf("b.booking_id", "booking_participant", "booking_id", "participant_id", *f.Participant))
	}
	return preds
}

// tripPredicates turns the set fields of f into predicates over the trip query.
func tripPredicates(f domain.TripFilters) []predicate {
	var preds []predicate
	if f.Kind != nil {
		preds = append(preds, eq("t.trip_kind_id", *f.Kind))
	}
	if f.Location != nil {
		preds = append(preds, eq("t.location_id", *f.Location))
	}
	if f.DateRange != nil {
		preds = append(preds, between("t.start_time", f.DateRange.Start, f.DateRange.End))
	}
	return preds
}
