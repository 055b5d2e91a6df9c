package postgres

import (
	"fmt"
	"strings"
)

// updateBuilder assembles "UPDATE t SET a = $1, b = $2 WHERE id = $3".
// Column names only ever come from constants in this package; every value
// is a bind parameter.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

func (u *updateBuilder) set(col string, v any) {
	u.args = append(u.args, v)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", col, len(u.args)))
}

// setIf writes col only when the caller sent a value.
func setIf[T any](u *updateBuilder, col string, v *T) {
	if v != nil {
		u.set(col, *v)
	}
}

// setIfMapped is setIf with a conversion, e.g. a date string to time.Time.
func setIfMapped[T, V any](u *updateBuilder, col string, v *T, conv func(T) (V, error)) error {
	if v == nil {
		return nil
	}
	out, err := conv(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", col, err)
	}
	u.set(col, out)
	return nil
}

func (u *updateBuilder) empty() bool {
	return len(u.sets) == 0
}

func (u *updateBuilder) build(idCol string, id any, returning string) (string, []any) {
	args := append(append(make([]any, 0, len(u.args)+1), u.args...), id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", u.table, strings.Join(u.sets, ", "), idCol, len(args))
	if returning != "" {
		q += " RETURNING " + returning
	}
	return q, args
}
