package contract

import (
	"path/filepath"
)

// Headers go to stderr so that stdout carries only the rendered result.

// LogDiffHeader prints a header for a coverage diff.
func LogDiffHeader(file1, file2, graphKey string) {
	LogInfo("🔎 Graph: %s", graphKey)
	LogInfo("📊 Comparing: %s ↔ %s", filepath.Base(file1), filepath.Base(file2))
}

// LogCheckHeader prints a header for a coverage regression check.
func LogCheckHeader(baseline, candidate string, maxLost int) {
	LogInfo("🛡️  Baseline: %s → Candidate: %s (max lost: %d)", filepath.Base(baseline), filepath.Base(candidate), maxLost)
}

// LogTrendHeader prints a header for scenario trend extraction.
func LogTrendHeader(logPath string) {
	LogInfo("📈 Test process: %s", filepath.Base(logPath))
}

// LogGraphHeader prints a header for service graph extraction.
func LogGraphHeader(reportPath, graphKey string) {
	LogInfo("🕸️  Service graph: %s (%s)", filepath.Base(reportPath), graphKey)
}

// LogDictHeader prints a header for dictionary extraction.
func LogDictHeader(specPath string) {
	LogInfo("📖 Dictionary from: %s", filepath.Base(specPath))
}
