package budget

// Status classifies how close a category is to its budget.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusExceeded Status = "exceeded"
)

// Utilization thresholds, in percent. Each band is closed at the bottom and
// open at the top; exceeded is open-ended upward.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
	ExceededThreshold = 100.0
)

// StatusFor maps a utilization percentage onto a Status.
func StatusFor(utilization float64) Status {
	switch {
	case utilization >= ExceededThreshold:
		return StatusExceeded
	case utilization >= CriticalThreshold:
		return StatusCritical
	case utilization >= WarningThreshold:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Severity ranks statuses most urgent first: exceeded 0, critical 1,
// warning 2, ok 3.
func (s Status) Severity() int {
	switch s {
	case StatusExceeded:
		return 0
	case StatusCritical:
		return 1
	case StatusWarning:
		return 2
	case StatusOK:
		return 3
	}
	return 4
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.Severity() < 4
}
