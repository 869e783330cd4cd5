package main

// Exit codes returned by the CLI.
const (
	// ExitSuccess indicates the command completed normally.
	ExitSuccess = 0

	// ExitError indicates a general failure.
	ExitError = 1

	// ExitConfigError indicates missing or invalid configuration,
	// including absent API credentials.
	ExitConfigError = 2

	// ExitDataError indicates a problem with stored or input data, such
	// as an unknown paper ID or an unreadable PDF.
	ExitDataError = 3
)
