package memory

import (
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
)

type lateConsiderationRepository struct {
	*requests[lateconsideration.LateConsideration]
}

func NewLateConsiderationRepository(s *Store) lateconsideration.LateConsiderationRepository {
	return &lateConsiderationRepository{requests: s.lates}
}
