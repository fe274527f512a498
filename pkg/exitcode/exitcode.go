// Package exitcode provides standardized exit codes for the licet CLI
package exitcode

// Exit codes for licet
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	ScanError       = 3
	PolicyViolation = 4
	FileSystemError = 5
	ServerError     = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ScanError:
		return "Scan error"
	case PolicyViolation:
		return "Policy violation"
	case FileSystemError:
		return "File system error"
	case ServerError:
		return "Server error"
	default:
		return "Unknown error"
	}
}
