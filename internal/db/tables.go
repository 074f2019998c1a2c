package db

import (
	"fmt"
	"strings"
)

// ColumnKind tells the binder how to convert a JSON value for a column.
type ColumnKind int

const (
	// Scalar values (string, number, bool) bind as-is.
	Scalar ColumnKind = iota
	// Timestamp values are strings parsed to time.Time before binding.
	Timestamp
)

// Column is a mutable, client-settable column.
type Column struct {
	Name    string
	SQLType string
	Kind    ColumnKind
}

// Table describes one resource table: its generated primary key and its
// mutable columns in bind order.
type Table struct {
	Name    string
	Key     string
	Columns []Column
}

// ColumnNames returns the mutable column names in declared order.
func (t Table) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, c.Name)
	}
	return out
}

func quote(ident string) string { return "`" + ident + "`" }

func (t Table) selectList() string {
	cols := []string{quote(t.Key)}
	for _, c := range t.Columns {
		cols = append(cols, quote(c.Name))
	}
	return strings.Join(cols, ", ")
}

func (t Table) listQuery() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", t.selectList(), quote(t.Name), quote(t.Key))
}

func (t Table) getQuery() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s=?", t.selectList(), quote(t.Name), quote(t.Key))
}

func (t Table) insertQuery() string {
	cols := make([]string, 0, len(t.Columns))
	marks := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, quote(c.Name))
		marks = append(marks, "?")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(t.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

func (t Table) updateQuery() string {
	sets := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		sets = append(sets, quote(c.Name)+"=?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s=?", quote(t.Name), strings.Join(sets, ", "), quote(t.Key))
}

func (t Table) deleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s=?", quote(t.Name), quote(t.Key))
}

// DDL returns the CREATE TABLE IF NOT EXISTS statement for t.
func (t Table) DDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quote(t.Name))
	fmt.Fprintf(&b, "\t%s BIGINT AUTO_INCREMENT PRIMARY KEY", quote(t.Key))
	for _, c := range t.Columns {
		fmt.Fprintf(&b, ",\n\t%s %s NULL", quote(c.Name), c.SQLType)
	}
	b.WriteString("\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")
	return b.String()
}

var Establishments = Table{
	Name: "establishments",
	Key:  "establishmentId",
	Columns: []Column{
		{Name: "name", SQLType: "VARCHAR(255)"},
		{Name: "city", SQLType: "VARCHAR(255)"},
		{Name: "state", SQLType: "VARCHAR(64)"},
		{Name: "email", SQLType: "VARCHAR(255)"},
		{Name: "phone", SQLType: "VARCHAR(32)"},
		{Name: "zip", SQLType: "VARCHAR(16)"},
	},
}

var Specials = Table{
	Name: "specials",
	Key:  "specialId",
	Columns: []Column{
		{Name: "startTime", SQLType: "DATETIME", Kind: Timestamp},
		{Name: "endTime", SQLType: "DATETIME", Kind: Timestamp},
		{Name: "name", SQLType: "VARCHAR(255)"},
		{Name: "currentPrice", SQLType: "DECIMAL(10,2)"},
		{Name: "discountPrice", SQLType: "DECIMAL(10,2)"},
		{Name: "isActive", SQLType: "TINYINT(1)"},
		{Name: "numAvailable", SQLType: "INT"},
	},
}

// Tables is every table EnsureSchema creates.
var Tables = []Table{Establishments, Specials}
