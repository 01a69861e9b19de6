package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	attemptsTable = "attempts"

	columnID           = "id"
	columnTable        = "times_table"
	columnMultiplicand = "multiplicand"
	columnCorrect      = "correct"
	columnElapsedMs    = "elapsed_ms"
	columnTimestamp    = "timestamp"
)

// attemptColumns is the select list shared by every attempt query, in the
// order scanAttempts expects.
var attemptColumns = []string{
	columnID,
	columnTable,
	columnMultiplicand,
	columnCorrect,
	columnElapsedMs,
	columnTimestamp,
}

var (
	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: columnID, Type: field.TypeInt64, Increment: true},
		{Name: columnTable, Type: field.TypeInt},
		{Name: columnMultiplicand, Type: field.TypeInt},
		{Name: columnCorrect, Type: field.TypeBool},
		{Name: columnElapsedMs, Type: field.TypeInt64},
		{Name: columnTimestamp, Type: field.TypeInt64},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       attemptsTable,
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_times_table",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[1]},
			},
			{
				Name:    "attempt_times_table_multiplicand",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[1], AttemptsColumns[2]},
			},
			{
				Name:    "attempt_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[5]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AttemptsTable,
	}
)
