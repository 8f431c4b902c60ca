package attendance

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Outcome is what every check and transition hands back to the caller:
// whether the action is (or was) allowed plus a title and message fit for
// display. Reason carries the matching sentinel on refusal.
type Outcome struct {
	Allowed  bool     `json:"allowed"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Record   *Record  `json:"-"`
	Reason   error    `json:"-"`
}

// Allowed is the passing result of a check.
func Allowed() Outcome {
	return Outcome{Allowed: true}
}

// Succeeded is the result of a completed transition.
func Succeeded(title, message string, rec *Record) Outcome {
	return Outcome{Allowed: true, Title: title, Message: message, Severity: SeverityInfo, Record: rec}
}

// Refused builds a guard failure.
func Refused(reason error, title, message string) Outcome {
	return Outcome{
		Allowed:  false,
		Title:    title,
		Message:  message,
		Severity: SeverityWarning,
		Code:     CodeOf(reason),
		Reason:   reason,
	}
}
