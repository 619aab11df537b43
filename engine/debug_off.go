//go:build !debug

package engine

// debugLog is compiled out unless built with -tags debug
func debugLog(format string, args ...interface{}) {}
