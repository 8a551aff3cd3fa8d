package main

// exitError carries a specific process exit code without cobra
// printing a redundant "Error:" line for conditions that already
// produced their own user-facing output (e.g. aggregate's per-root
// "<N IO Error(s)>" annotations).
type exitError struct{ code int }

func (e exitError) Error() string { return "" }

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(exitError); ok {
		return ee.code
	}
	return 2
}
