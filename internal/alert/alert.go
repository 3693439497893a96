// Package alert carries the user-facing messages the workflow services
// surface: every success or failure becomes one human-readable line.
package alert

import "fmt"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Sink interface {
	Notify(level Level, message string)
}

// Printer writes alerts to stdout; the CLI's default sink.
type Printer struct{}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Notify(level Level, message string) {
	switch level {
	case LevelError:
		fmt.Printf("!! %s\n", message)
	case LevelSuccess:
		fmt.Printf("ok %s\n", message)
	default:
		fmt.Printf("-- %s\n", message)
	}
}

var _ Sink = (*Printer)(nil)
