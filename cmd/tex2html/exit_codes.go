package main

// Exit codes returned by the CLI.
const (
	exitOK      = 0
	exitUsage   = 1
	exitCompile = 2 // compile ended on the fatal no-entry path
	exitIO      = 3 // snapshot, output, or export failure
)
