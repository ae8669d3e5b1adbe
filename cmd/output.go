package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

// printer writes human-facing command output.
type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter(out, errOut io.Writer) *printer {
	return &printer{out: out, err: errOut}
}

func (p *printer) Info(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
}

func (p *printer) Warning(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
}

func (p *printer) Error(format string, args ...any) {
	color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
}

func (p *printer) Header(title string) {
	color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
	color.New(color.FgWhite).Fprintf(p.out, "%s\n", strings.Repeat("─", len(title)))
}

func stateSymbol(state domain.RunState) string {
	switch state {
	case domain.RunCompleted:
		return color.GreenString("●")
	case domain.RunFailed:
		return color.RedString("●")
	default:
		return color.YellowString("●")
	}
}

// RunResult prints every stage of a run with its result payload.
func (p *printer) RunResult(result *domain.RunResult) {
	p.Header(fmt.Sprintf("Run %s (%s)", result.RunID, result.Stage))
	fmt.Fprintf(p.out, "%s %s\n", stateSymbol(result.State), result.State)

	for _, stage := range result.Stages {
		if stage.Error != "" {
			p.Error("%s: %s", stage.Stage, stage.Error)
			continue
		}
		p.Success("%s", stage.Stage)
		if stage.Result == nil {
			continue
		}
		body, err := json.MarshalIndent(stage.Result, "    ", "  ")
		if err != nil {
			p.Warning("%s: result not printable: %v", stage.Stage, err)
			continue
		}
		fmt.Fprintf(p.out, "    %s\n", body)
	}
}
