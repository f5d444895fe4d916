package report

import "strings"

// Section is one titled block of report content
type Section struct {
	Heading string
	Body    string
}

// Report is the assembled product. It is plain data passed around by
// value; rendering is the only behavior it carries.
type Report struct {
	Title    string
	Sections []Section
	Footer   string
}

// Render formats the report for console output
func (r Report) Render() string {
	var sb strings.Builder

	if r.Title != "" {
		sb.WriteString("== " + r.Title + " ==\n")
	}
	for _, section := range r.Sections {
		if section.Heading != "" {
			sb.WriteString(section.Heading + ":\n")
		}
		sb.WriteString("  " + section.Body + "\n")
	}
	if r.Footer != "" {
		sb.WriteString("-- " + r.Footer + "\n")
	}

	return sb.String()
}
