package cli

// RunWithOutput exposes run so tests can capture the report
var RunWithOutput = run
