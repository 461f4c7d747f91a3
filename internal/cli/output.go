package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter writing to stdout/stderr
func NewOutput(format string) *Output {
	return &Output{format: format, out: os.Stdout, errOut: os.Stderr}
}

// Print outputs data in the configured format. In text mode data is printed
// with %v, so commands should pass preformatted strings.
func (o *Output) Print(data any) {
	if o.format == "json" {
		enc := json.NewEncoder(o.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(data)
		return
	}
	fmt.Fprintf(o.out, "%v\n", data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
		return
	}
	fmt.Fprintln(o.out, msg)
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errOut, string(data))
		return
	}
	fmt.Fprintf(o.errOut, "Error: %s\n", err)
}
