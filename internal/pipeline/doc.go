// Package pipeline runs one install end to end: resolve the app name,
// discover its parts, plan and perform the combine, then hand the archive to
// 7-Zip and tidy the result.
//
// Files:
//   - discover.go: glob-based candidate discovery
//   - combine.go:  sequential concatenation of ordered parts
//   - progress.go: log lines and terminal progress bar for the combine
//   - runner.go:   phase orchestration and error propagation
//   - stats.go:    per-phase timings for the final summary
package pipeline
