package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError prints the error in the selected output mode and exits
// with the given code.
func exitWithError(code int, err error) {
	if humanOutput {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	} else {
		_ = outputJSON(ErrorResponse{Error: err.Error()})
	}
	os.Exit(code)
}
