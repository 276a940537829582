package model

import (
	"fmt"
	"log"
	"sort"
	"strconv"
)

// LabeledTrace pairs a trace with its unique label within a set.
type LabeledTrace struct {
	Label string
	Trace *EnergyTrace
}

// EnergyTraceSet is an immutable collection of uniquely labeled traces.
type EnergyTraceSet struct {
	labels []string
	traces map[string]*EnergyTrace
}

// NewEnergyTraceSet builds a set from a sequence of traces. When labels is
// nil, stringified positional indexes ("0".."N-1") are generated. Label and
// trace counts must match and labels must be unique.
func NewEnergyTraceSet(traces []*EnergyTrace, labels []string) (*EnergyTraceSet, error) {
	if labels == nil {
		labels = make([]string, len(traces))
		for i := range traces {
			labels[i] = strconv.Itoa(i)
		}
	}
	if len(labels) != len(traces) {
		return nil, fmt.Errorf("%w: got %d labels for %d traces",
			ErrLabelCountMismatch, len(labels), len(traces))
	}

	set := &EnergyTraceSet{
		labels: labels,
		traces: make(map[string]*EnergyTrace, len(traces)),
	}
	for i, label := range labels {
		if _, ok := set.traces[label]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		set.traces[label] = traces[i]
	}
	return set, nil
}

// NewEnergyTraceSetFromMap builds a set from an already-labeled mapping.
// A non-nil labels argument is advisory-ignored: the mapping's own keys
// win. Iteration order is the sorted label order, since the input map
// carries none.
func NewEnergyTraceSetFromMap(traces map[string]*EnergyTrace, labels []string) *EnergyTraceSet {
	if labels != nil {
		log.Printf("ignoring supplied labels: traces were given as a labeled map")
	}

	ordered := make([]string, 0, len(traces))
	for label := range traces {
		ordered = append(ordered, label)
	}
	sort.Strings(ordered)

	copied := make(map[string]*EnergyTrace, len(traces))
	for label, trace := range traces {
		copied[label] = trace
	}
	return &EnergyTraceSet{labels: ordered, traces: copied}
}

// Len returns the number of traces in the set.
func (s *EnergyTraceSet) Len() int { return len(s.labels) }

// Labels returns the labels in iteration order.
func (s *EnergyTraceSet) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Trace looks up a trace by label.
func (s *EnergyTraceSet) Trace(label string) (*EnergyTrace, bool) {
	t, ok := s.traces[label]
	return t, ok
}

// Traces yields (label, trace) pairs in iteration order.
func (s *EnergyTraceSet) Traces() []LabeledTrace {
	out := make([]LabeledTrace, len(s.labels))
	for i, label := range s.labels {
		out[i] = LabeledTrace{Label: label, Trace: s.traces[label]}
	}
	return out
}

func (s *EnergyTraceSet) String() string {
	return fmt.Sprintf("EnergyTraceSet(traces=%d)", len(s.labels))
}
