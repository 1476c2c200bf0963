package cmd

import (
	"fmt"
	"io"
	"os"
)

// PrintError prints a user-facing message. With --verbose the technical
// error follows it.
func PrintError(w io.Writer, userMsg string, technicalErr error) {
	fmt.Fprintln(w, userMsg)
	if verbose && technicalErr != nil && technicalErr.Error() != userMsg {
		fmt.Fprintf(w, "Error: %v\n", technicalErr)
	}
}

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(os.Stderr, userMsg, technicalErr)
	os.Exit(1)
}

// userError carries a friendly message for an error that ends the command.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func fatal(msg string, err error) error {
	return &userError{msg: msg, err: err}
}
