package memory

import "fmt"

// ForeignKeyError mirrors a foreign-key violation in the SQL schema.
type ForeignKeyError struct {
	Table string
	ID    string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Table, e.ID)
}

func errForeignKey(table, id string) error {
	return &ForeignKeyError{Table: table, ID: id}
}
