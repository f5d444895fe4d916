package report

// Builder accumulates report parts. All steps work on the same report in
// progress and return the builder for chaining.
type Builder struct {
	report Report
}

// NewBuilder creates a builder holding a blank report
func NewBuilder() *Builder {
	return &Builder{}
}

// Title sets the report title
func (b *Builder) Title(title string) *Builder {
	b.report.Title = title
	return b
}

// Section appends a titled content block
func (b *Builder) Section(heading, body string) *Builder {
	b.report.Sections = append(b.report.Sections, Section{Heading: heading, Body: body})
	return b
}

// Line appends an untitled content block
func (b *Builder) Line(body string) *Builder {
	b.report.Sections = append(b.report.Sections, Section{Body: body})
	return b
}

// Footer sets the report footer
func (b *Builder) Footer(footer string) *Builder {
	b.report.Footer = footer
	return b
}

// Build returns the assembled report by value and resets the builder so
// the next report starts blank. The caller owns the result outright.
func (b *Builder) Build() Report {
	result := b.report
	b.report = Report{}
	return result
}
