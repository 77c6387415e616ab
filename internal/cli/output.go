package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/thenoetrevino/deskboard/internal/gateway"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and Err default to os.Stdout and os.Stderr
	Out io.Writer
	Err io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) err() io.Writer {
	if f.Err != nil {
		return f.Err
	}
	return os.Stderr
}

// Success outputs a successful result. human renders it for people and is
// only called in the default mode.
func (f *OutputFormatter) Success(data any, human func(io.Writer) error) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() string }); ok {
			_, err := fmt.Fprintln(f.out(), idGetter.GetID())
			return err
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	if human != nil {
		return human(f.out())
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	if _, err := fmt.Fprintf(f.err(), "Error: %s\n", message); err != nil {
		return err
	}
	if suggestion != "" {
		if _, err := fmt.Fprintf(f.err(), "Suggestion: %s\n", suggestion); err != nil {
			return err
		}
	}
	return nil
}

// Fail reports err in the current mode and returns it wrapped with its exit
// code, ready to be returned from RunE
func (f *OutputFormatter) Fail(err error) error {
	code := ExitCode(err)
	suggestion := ""
	if gateway.IsConflict(err) {
		suggestion = "The board changed since it was loaded. Run the command again."
	}
	_ = f.ErrorWithSuggestion(ErrorCode(err), err.Error(), suggestion)
	return &ExitError{Code: code, Err: err, Reported: true}
}
