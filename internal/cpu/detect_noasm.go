//go:build noasmtest

package cpu

// Detect reports no capabilities when accelerated paths are disabled, so
// every dispatch slot falls back to the generic implementation.
func Detect() Features {
	return Features{}
}
