package w3x

import (
	"fmt"
	"log"
	"sync"
)

type DiagnosticKind int

const (
	Info DiagnosticKind = iota
	RecordIncomplete
	DanglingParent
	RootMissing
)

func (k DiagnosticKind) String() string {
	switch k {
	case RecordIncomplete:
		return "record-incomplete"
	case DanglingParent:
		return "dangling-parent"
	case RootMissing:
		return "root-missing"
	default:
		return "info"
	}
}

func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is a non-fatal finding about one pivot record.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Pivot   string         `json:"pivot,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Pivot == "" {
		return fmt.Sprintf("[%v] %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("[%v] pivot %q: %s", d.Kind, d.Pivot, d.Message)
}

// Reporter receives diagnostics while a hierarchy is built and resolved.
type Reporter interface {
	Report(d Diagnostic)
}

func reportf(rep Reporter, kind DiagnosticKind, pivot string, format string, a ...interface{}) {
	if rep == nil {
		return
	}
	rep.Report(Diagnostic{Kind: kind, Pivot: pivot, Message: fmt.Sprintf(format, a...)})
}

type LogReporter struct {
	Prefix string
}

func (lr LogReporter) Report(d Diagnostic) {
	log.Printf("%s%v", lr.Prefix, d)
}

// DiagnosticList collects everything reported to it.
type DiagnosticList struct {
	lock  sync.Mutex
	items []Diagnostic
}

func (dl *DiagnosticList) Report(d Diagnostic) {
	dl.lock.Lock()
	defer dl.lock.Unlock()
	dl.items = append(dl.items, d)
}

func (dl *DiagnosticList) Items() []Diagnostic {
	dl.lock.Lock()
	defer dl.lock.Unlock()
	return append([]Diagnostic(nil), dl.items...)
}

func (dl *DiagnosticList) Count(kind DiagnosticKind) int {
	dl.lock.Lock()
	defer dl.lock.Unlock()
	n := 0
	for _, d := range dl.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

type MultiReporter []Reporter

func (mr MultiReporter) Report(d Diagnostic) {
	for _, r := range mr {
		if r != nil {
			r.Report(d)
		}
	}
}
