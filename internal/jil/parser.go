// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the single-pass JIL block parser. The parser is a
// two-state machine: with no open block, only a declaration line changes
// anything; with an open block, every other line is recorded on it. A
// declaration or the end of input seals the open block into the result.
package jil

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// declarationRegex matches the line that starts a job block and captures its name.
var declarationRegex = regexp.MustCompile(`(?i)^insert_job:\s*(\S+)`)

// commentPrefixes mark lines that are skipped entirely.
var commentPrefixes = []string{"/*", "#"}

// attribute binds a lower-case line prefix to the Job field it sets.
type attribute struct {
	prefix string
	set    func(job *Job, value string)
}

// attributes is checked in order and the first matching prefix wins. No
// prefix may be a prefix of another.
var attributes = []attribute{
	{prefix: "job_type:", set: func(job *Job, v string) { job.Kind = NormalizeKind(v) }},
	{prefix: "command:", set: func(job *Job, v string) { job.Command = v }},
	{prefix: "watch_file:", set: func(job *Job, v string) { job.WatchTarget = v }},
	{prefix: "condition:", set: func(job *Job, v string) { job.Condition = v }},
	{prefix: "start_times:", set: func(job *Job, v string) { job.Schedule = unquote(v) }},
}

type parseState int

const (
	stateNoOpenBlock parseState = iota
	stateOpenBlock
)

// parser holds the state of one Parse call.
type parser struct {
	state   parseState
	current *Job
	jobs    []*Job
}

// Parse converts JIL text into its job records. It never fails; the empty
// string yields a Result with no jobs.
func Parse(text string) *Result {
	p := &parser{state: stateNoOpenBlock, jobs: []*Job{}}
	for line := range strings.Lines(lineEndings.Replace(text)) {
		p.consume(strings.TrimSpace(line))
	}
	return p.finish()
}

// lineEndings maps CRLF and lone CR to LF. CRLF is listed first so it is
// matched before its CR prefix.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseReader reads r to the end and parses its content.
func ParseReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JIL input: %w", err)
	}
	return Parse(string(data)), nil
}

// ParseFile reads and parses the JIL file at path.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JIL file %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

func (p *parser) consume(line string) {
	if isSkippable(line) {
		return
	}

	if m := declarationRegex.FindStringSubmatch(line); m != nil {
		p.declare(m[1])
		return
	}

	if p.state == stateNoOpenBlock {
		return
	}
	p.record(line)
}

// declare seals any open block and opens a new one named name.
func (p *parser) declare(name string) {
	if p.state == stateOpenBlock {
		p.seal()
	}
	p.current = newJob(name)
	p.state = stateOpenBlock
}

// seal appends the open block to the result and closes it.
func (p *parser) seal() {
	p.jobs = append(p.jobs, p.current)
	p.current = nil
	p.state = stateNoOpenBlock
}

// record stores line on the open block and applies the first matching attribute.
func (p *parser) record(line string) {
	p.current.RawLines = append(p.current.RawLines, line)

	lower := strings.ToLower(line)
	for _, attr := range attributes {
		if strings.HasPrefix(lower, attr.prefix) {
			attr.set(p.current, valueOf(line))
			return
		}
	}
}

func (p *parser) finish() *Result {
	if p.state == stateOpenBlock {
		p.seal()
	}
	return &Result{Jobs: p.jobs}
}

func isSkippable(line string) bool {
	if line == "" {
		return true
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// valueOf returns everything after the first colon, trimmed.
func valueOf(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

// unquote removes at most one leading and one trailing quote character.
func unquote(s string) string {
	if len(s) > 0 && isQuote(s[0]) {
		s = s[1:]
	}
	if len(s) > 0 && isQuote(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
