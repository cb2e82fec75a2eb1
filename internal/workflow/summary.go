package workflow

// Summary holds the per-run counters reported after the last title.
type Summary struct {
	// Titles counts every entry seen.
	Titles int
	// WithImages counts titles whose first image marker already existed.
	WithImages int
	// WithMetadata counts titles whose sidecar already existed or was written.
	WithMetadata int

	Written    int
	Skipped    int
	Abandoned  int
	Incomplete int
}

type titleOutcome int

const (
	outcomeSkipped titleOutcome = iota
	outcomeWritten
	outcomeAbandoned
	outcomeIncomplete
)

func (s *Summary) record(outcome titleOutcome) {
	switch outcome {
	case outcomeSkipped:
		s.Skipped++
		s.WithMetadata++
	case outcomeWritten:
		s.Written++
		s.WithMetadata++
	case outcomeAbandoned:
		s.Abandoned++
	case outcomeIncomplete:
		s.Incomplete++
	}
}
