// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Job record produced for each JIL block and the
// Result that holds them in declaration order.
package jil

import "strings"

// Kind is the normalized category of a job.
type Kind string

const (
	// KindCommand is a job that runs a command (raw type code "c").
	KindCommand Kind = "command"
	// KindFileWatch is a job that waits for a file to appear (raw type code "f").
	KindFileWatch Kind = "file_watch"
)

// kinds maps lower-cased raw type codes to their normalized Kind.
var kinds = map[string]Kind{
	"c": KindCommand,
	"f": KindFileWatch,
}

// NormalizeKind maps a raw job_type value to a Kind. Unknown codes are
// returned as their own lower-cased, trimmed form.
func NormalizeKind(raw string) Kind {
	code := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := kinds[code]; ok {
		return kind
	}
	return Kind(code)
}

// Job is one parsed job-control block. Optional attributes are empty when
// the block did not declare them.
type Job struct {
	Name        string   `json:"job_name" yaml:"job_name"`
	Kind        Kind     `json:"job_type,omitempty" yaml:"job_type,omitempty"`
	Command     string   `json:"command,omitempty" yaml:"command,omitempty"`
	WatchTarget string   `json:"watch_file,omitempty" yaml:"watch_file,omitempty"`
	Condition   string   `json:"condition,omitempty" yaml:"condition,omitempty"`
	Schedule    string   `json:"start_times,omitempty" yaml:"start_times,omitempty"`
	RawLines    []string `json:"raw_lines" yaml:"raw_lines"`
}

func newJob(name string) *Job {
	return &Job{Name: name, RawLines: []string{}}
}

// Result is the ordered output of a parse. Order follows the declarations in
// the source; duplicate names appear as separate entries.
type Result struct {
	Jobs []*Job `json:"jobs" yaml:"jobs"`
}

// Names returns the job names in declaration order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Jobs))
	for _, job := range r.Jobs {
		names = append(names, job.Name)
	}
	return names
}
