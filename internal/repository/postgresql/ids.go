package postgresql

import "github.com/google/uuid"

// Rows are keyed by time-ordered UUIDs generated in the application.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
