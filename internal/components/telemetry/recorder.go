package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call made against a Recorder.
type Report struct {
	// one of "broken", "warning", "debug", "count"
	Level  string
	Id     string
	Params []any
	Count  int64
}

// Recorder is an API that keeps every report in memory, it is meant for tests
// that need to assert something was (or was not) reported.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) push(report Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.push(Report{Level: "broken", Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.push(Report{Level: "warning", Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.push(Report{Level: "debug", Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.push(Report{Level: "count", Id: id, Count: count})
}

// Reports returns a copy of every report of the given level, or all reports if
// level is empty.
func (r *Recorder) Reports(level string) []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var out []Report
	for _, report := range r.reports {
		if level == "" || report.Level == level {
			out = append(out, report)
		}
	}
	return out
}

// Has returns true if a report of the given level has an id ending with `suffix`.
func (r *Recorder) Has(level, suffix string) bool {
	for _, report := range r.Reports(level) {
		if strings.HasSuffix(report.Id, suffix) {
			return true
		}
	}
	return false
}
