package lateconsideration

import "github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"

// LateConsiderationRepository treats (employee, attendance date) as the
// duplicate key for pending requests.
type LateConsiderationRepository interface {
	approval.Repository[LateConsideration]
}
