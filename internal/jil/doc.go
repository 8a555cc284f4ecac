// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package jil reads AutoSys job-control text (JIL) into an ordered list of
// job records.
//
// A JIL file is a sequence of blocks. Each block starts with a declaration
// line and is followed by attribute lines:
//
//	/* nightly load */
//	insert_job: LOAD_EVENTS
//	job_type: c
//	command: /opt/etl/bin/load_events.sh
//	condition: s(WATCH_EVENTS)
//	start_times: "02:00"
//
// The parser is tolerant. It never returns an error for malformed text:
// comments and blank lines are skipped, lines before the first declaration
// are dropped, and attribute lines it does not recognize are kept only in
// the job's RawLines. Dependency conditions are carried as opaque strings.
package jil
