package diag

// Severity ranks a diagnostic. Errors fail a build's diagnostics
// check; warnings and infos never do.
type Severity uint8

const (
	// SevInfo carries supplementary information.
	SevInfo Severity = iota
	// SevWarning flags suspicious but accepted input, including
	// tolerated unknown command-line arguments.
	SevWarning
	// SevError flags input the pipeline could not accept.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
