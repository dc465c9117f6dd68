// Package exitcode defines named exit codes for the caltc CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and downstream ledger tooling.
package exitcode

// Exit code constants.
const (
	Success          = 0 // Events listed (possibly zero of them)
	Error            = 1 // Invalid args, unreadable event source, misconfiguration
	PermissionDenied = 2 // Event store denied access
	CalendarNotFound = 3 // A requested calendar name matched nothing
	MappingNotFound  = 4 // map remove targeted a mapping that does not exist
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case PermissionDenied:
		return "PermissionDenied"
	case CalendarNotFound:
		return "CalendarNotFound"
	case MappingNotFound:
		return "MappingNotFound"
	default:
		return "unknown"
	}
}
