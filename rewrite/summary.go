package rewrite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"navsync/common"
)

// Result describes what happened to a single document.
type Result struct {
	ID      string
	Path    string
	Outcome common.Outcome
	// Applied and Skipped list fragments found and not found in the document,
	// in step order.
	Applied []common.FragmentKind
	Skipped []common.FragmentKind
	Err     error
	Elapsed time.Duration
}

// Summary is the outcome of a batch run, results follow corpus order.
type Summary struct {
	RunID   uuid.UUID
	DryRun  bool
	Results []Result
	Elapsed time.Duration
}

// Count returns number of documents with given outcome.
func (s *Summary) Count(o common.Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Changed returns results of documents which were (or in dry run would be)
// rewritten.
func (s *Summary) Changed() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Outcome == common.OutcomeRewritten {
			out = append(out, r)
		}
	}
	return out
}

// Err combines errors of all failed documents, nil when there were none.
func (s *Summary) Err() error {
	var errs error
	for _, r := range s.Results {
		if r.Outcome == common.OutcomeFailed {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return errs
}

// WriteTo writes human readable summary, one document per line.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s dry-run=%t elapsed=%s\n", s.RunID, s.DryRun, s.Elapsed)
	for _, r := range s.Results {
		fmt.Fprintf(&b, "%-9s %s", r.Outcome, r.Path)
		if len(r.Applied) > 0 {
			fmt.Fprintf(&b, " applied=%s", kinds(r.Applied))
		}
		if len(r.Skipped) > 0 {
			fmt.Fprintf(&b, " skipped=%s", kinds(r.Skipped))
		}
		if r.Err != nil {
			fmt.Fprintf(&b, " error=%q", r.Err.Error())
		}
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func kinds(list []common.FragmentKind) string {
	names := make([]string, 0, len(list))
	for _, k := range list {
		names = append(names, k.String())
	}
	return strings.Join(names, ",")
}
