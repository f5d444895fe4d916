package report

import (
	"errors"
	"fmt"
)

// Layout names a preset composition sequence
type Layout string

const (
	LayoutMinimal Layout = "minimal"
	LayoutBrief   Layout = "brief"
	LayoutFull    Layout = "full"
)

// ErrUnknownLayout is returned by Compose for an unrecognized layout
var ErrUnknownLayout = errors.New("unknown report layout")

// layouts maps each preset to the building steps it runs
var layouts = map[Layout]func(b *Builder, subject string){
	LayoutMinimal: func(b *Builder, subject string) {
		b.Title(subject)
	},
	LayoutBrief: func(b *Builder, subject string) {
		b.Title(subject)
		b.Line("Nothing unusual to report.")
	},
	LayoutFull: func(b *Builder, subject string) {
		b.Title(subject)
		b.Section("Overview", "All checks completed.")
		b.Section("Details", "Nothing unusual to report.")
		b.Footer("End of report.")
	},
}

// Compose runs the preset building sequence for the layout against a
// fresh builder and returns the finished report
func Compose(layout Layout, subject string) (Report, error) {
	steps, ok := layouts[layout]
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownLayout, layout)
	}

	b := NewBuilder()
	steps(b, subject)
	return b.Build(), nil
}
