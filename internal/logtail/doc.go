// Package logtail reads the tail of jester's own log file.
//
// # Overview
//
// The TUI owns the terminal, so jester writes its structured log to a file.
// `jester log` uses this package to show the last lines of that file in a
// readable form.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in one
// pass with O(maxLines) memory. A missing file is not an error; it simply
// has no lines yet.
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//
// # Decoding
//
// Parse decodes one zap JSON line into an Entry (time, level, message and the
// remaining fields). Lines that are not JSON are kept verbatim in Entry.Raw.
// Format renders an Entry as "15:04:05 LEVEL message key=value ...", with
// fields sorted by key so output is stable.
package logtail
