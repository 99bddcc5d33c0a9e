package debug

import (
	"fmt"
	"log"
	"time"
)

// Output logs a timestamped debug line when debugging is enabled.
func Output(enabled bool, format string, args ...interface{}) {
	if enabled {
		timestamp := time.Now().Format("15:04:05.000")
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", timestamp, message)
	}
}

// Timing measures and logs the execution time of an operation when debugging
// is enabled. Use as: defer debug.Timing(enabled, "matching")().
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Output(enabled, "Starting: %s", operation)

	return func() {
		Output(enabled, "Completed: %s (took %v)", operation, time.Since(start))
	}
}

// Progress logs a progress line every interval processed items.
func Progress(enabled bool, processed, total, interval int, what string) {
	if !enabled || interval <= 0 || total <= 0 || processed%interval != 0 {
		return
	}
	Output(enabled, "Processed %d/%d %s (%.1f%%)", processed, total, what,
		float64(processed)/float64(total)*100)
}
