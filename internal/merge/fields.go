package merge

import "fmt"

// Kind selects how a profile value is written to the record
type Kind int

const (
	// Verbatim copies the value unchanged.
	Verbatim Kind = iota
	// Color expands a compact {Red, Green, Blue} value.
	Color
)

func (k Kind) String() string {
	switch k {
	case Color:
		return "color"
	default:
		return "verbatim"
	}
}

// Field maps one profile field to a record key
type Field struct {
	Name string
	Key  string
	Kind Kind
}

// Section is a named group of recognized fields
type Section struct {
	Name   string
	Label  string
	Fields []Field
}

var sections = buildSections()

func buildSections() []Section {
	colors := make([]string, 0, 20)
	for i := 0; i < 16; i++ {
		colors = append(colors, fmt.Sprintf("Ansi %d Color", i))
	}
	colors = append(colors, "Background Color", "Foreground Color", "Cursor Color", "Cursor Text Color")

	defs := []struct {
		name   string
		label  string
		kind   Kind
		fields []string
	}{
		{name: "Colors", label: "colors", kind: Color, fields: colors},
		{name: "Font", label: "fonts", fields: []string{
			"Normal Font", "Non Ascii Font", "Use Non-ASCII Font", "Horizontal Spacing",
			"Vertical Spacing", "Use Bold Font", "Use Italic Font", "ASCII Anti Aliased",
		}},
		{name: "Window", label: "window settings", fields: []string{
			"Transparency", "Blur", "Blur Radius", "Columns", "Rows",
		}},
		{name: "Terminal", label: "terminal settings", fields: []string{
			"Scrollback Lines", "Unlimited Scrollback", "Terminal Type", "Silence Bell", "Visual Bell",
		}},
		{name: "Cursor", label: "cursor settings", fields: []string{
			"Cursor Type", "Blinking Cursor",
		}},
		{name: "Keyboard", label: "keyboard settings", fields: []string{
			"Option Key Sends", "Right Option Key Sends",
		}},
		{name: "Session", label: "session settings", fields: []string{
			"Close Sessions On End", "Prompt Before Closing 2",
		}},
	}

	out := make([]Section, 0, len(defs))
	for _, d := range defs {
		s := Section{Name: d.name, Label: d.label}
		for _, name := range d.fields {
			// Record keys match profile field names one to one.
			s.Fields = append(s.Fields, Field{
				Name: name,
				Key:  name,
				Kind: d.kind,
			})
		}
		out = append(out, s)
	}
	return out
}

// Sections returns the field mapping table in application order
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// LookupSection finds a recognized section by name
func LookupSection(name string) (Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Lookup finds a recognized field within a section
func (s Section) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
