package runner

import (
	"errors"

	"github.com/viant/typedoc/rewriter"
)

// Status is the per file outcome
type Status string

const (
	Unchanged Status = "unchanged"
	Changed   Status = "changed"
	Failed    Status = "failed"
)

// Exit status bits, combined across files
const (
	ExitChanged = 1
	ExitFailed  = 2
)

// Report describes what happened to one file
type Report struct {
	Path      string   `json:"path" yaml:"path"`
	Status    Status   `json:"status" yaml:"status"`
	Functions []string `json:"functions,omitempty" yaml:"functions,omitempty"`
	Before    string   `json:"before,omitempty" yaml:"before,omitempty"`
	After     string   `json:"after,omitempty" yaml:"after,omitempty"`
	Reason    string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Err       error    `json:"-" yaml:"-"`
}

func (r *Report) fail(err error) *Report {
	r.Status = Failed
	r.Err = err
	r.Error = err.Error()
	switch {
	case errors.Is(err, rewriter.ErrSyntax):
		r.Reason = "syntax"
	case errors.Is(err, rewriter.ErrInternal):
		r.Reason = "internal"
	default:
		r.Reason = "io"
	}
	return r
}

// Summary counts reports by status
type Summary struct {
	Changed   int `json:"changed" yaml:"changed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Failed    int `json:"failed" yaml:"failed"`
	Functions int `json:"functions" yaml:"functions"`
}

// Summarize counts reports by status
func Summarize(reports []*Report) Summary {
	var ret Summary
	for _, report := range reports {
		switch report.Status {
		case Changed:
			ret.Changed++
		case Unchanged:
			ret.Unchanged++
		case Failed:
			ret.Failed++
		}
		ret.Functions += len(report.Functions)
	}
	return ret
}

// ExitCode ORs the status bits of all reports: 1 when any file changed, 2 when any failed
func ExitCode(reports []*Report) int {
	code := 0
	for _, report := range reports {
		switch report.Status {
		case Changed:
			code |= ExitChanged
		case Failed:
			code |= ExitFailed
		}
	}
	return code
}
