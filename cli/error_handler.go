package cli

import (
	"fmt"
	"os"

	"github.com/easeltools/easel/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		if easelErr, ok := err.(*errors.EaselError); ok {
			fmt.Fprintf(os.Stderr, "❌ Configuration file not found: %v\n", easelErr.Details["path"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Configuration file not found.\n")
		}
		fmt.Fprintf(os.Stderr, "Create an easel.yml or pass one with --config.\n")
		return err

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'easel config validate' for details.\n")
		return err

	case errors.ErrCodeHostUnreachable:
		if easelErr, ok := err.(*errors.EaselError); ok {
			fmt.Fprintf(os.Stderr, "❌ Host not reachable at %v\n", easelErr.Details["url"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Host not reachable\n")
		}
		fmt.Fprintf(os.Stderr, "Check that the host is running and easel.yml points at it.\n")
		return err

	case errors.ErrCodeFileTooLarge:
		if easelErr, ok := err.(*errors.EaselError); ok {
			fmt.Fprintf(os.Stderr, "❌ File too large: %v bytes (limit %v)\n",
				easelErr.Details["size"], easelErr.Details["limit"])
		}
		return err

	case errors.ErrCodeInvalidJSON:
		if easelErr, ok := err.(*errors.EaselError); ok {
			fmt.Fprintf(os.Stderr, "❌ Invalid JSON in %v\n", easelErr.Details["path"])
		}
		fmt.Fprintf(os.Stderr, "The file was not written.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if easelErr, ok := err.(*errors.EaselError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", easelErr.ToJSON())
			}
		}
		return err
	}
}
