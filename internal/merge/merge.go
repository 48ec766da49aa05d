// Package merge overlays a terminal profile onto the default iTerm2 record.
//
// Only fields listed in the mapping table are written. Fields missing from the
// profile keep their stored value, and unrecognized profile keys are reported
// but never fail the merge. Every write is planned before the record is
// touched, so a failed merge leaves the document unchanged.
package merge

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iiroan/itermprofile/internal/profile"
	"github.com/iiroan/itermprofile/internal/store"
)

// Change is a single planned or applied record write
type Change struct {
	Section string
	Field   string
	Key     string
	Before  any
	After   any
	Existed bool
}

// Modified reports whether the write changes the stored value
func (c Change) Modified() bool {
	return !c.Existed || !equalValues(c.Before, c.After)
}

// Report describes what a merge did to the target record
type Report struct {
	GUID     string
	Name     string
	Sections []Section
	Changes  []Change
	Ignored  []string
}

// Modified returns the changes that alter stored values
func (r *Report) Modified() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Modified() {
			out = append(out, c)
		}
	}
	return out
}

// SectionChanges returns the changes belonging to the named section
func (r *Report) SectionChanges(name string) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Section == name {
			out = append(out, c)
		}
	}
	return out
}

// Apply locates the default record in doc and writes every recognized field
// present in p onto it. The document is mutated in place.
func Apply(doc *store.Document, p profile.Profile) (*Report, error) {
	if doc == nil {
		return nil, errors.New("merge: nil document")
	}

	guid := doc.DefaultGUID()
	if guid == "" {
		return nil, ErrNoDefaultTarget
	}

	record, ok := doc.Record(guid)
	if !ok {
		return nil, fmt.Errorf("%w (guid %s)", ErrTargetNotFound, guid)
	}

	report, err := Plan(record, p)
	if err != nil {
		return nil, err
	}
	report.GUID = guid
	report.Name = record.Name()

	for _, c := range report.Changes {
		record[c.Key] = c.After
	}
	return report, nil
}

// Plan computes the writes p would make to record without modifying it
func Plan(record store.Record, p profile.Profile) (*Report, error) {
	report := &Report{}

	for _, s := range sections {
		raw, present := p[s.Name]
		if !present {
			continue
		}
		fields, ok := raw.(map[string]any)
		if !ok {
			return nil, &FieldError{Section: s.Name, Err: ErrInvalidSection}
		}
		report.Sections = append(report.Sections, s)

		for _, f := range s.Fields {
			value, ok := fields[f.Name]
			if !ok {
				continue
			}
			if value == nil {
				return nil, &FieldError{Section: s.Name, Field: f.Name, Err: ErrNullValue}
			}
			if f.Kind == Color {
				expanded, err := expandColorValue(value)
				if err != nil {
					return nil, &FieldError{Section: s.Name, Field: f.Name, Err: err}
				}
				value = expanded
			}

			before, existed := record[f.Key]
			report.Changes = append(report.Changes, Change{
				Section: s.Name,
				Field:   f.Name,
				Key:     f.Key,
				Before:  before,
				After:   value,
				Existed: existed,
			})
		}
	}

	report.Ignored = unrecognized(p)
	return report, nil
}

// unrecognized lists profile keys outside the mapping table as "Section" or
// "Section / Field".
func unrecognized(p profile.Profile) []string {
	var out []string
	for name, raw := range p {
		s, ok := LookupSection(name)
		if !ok {
			out = append(out, name)
			continue
		}
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for field := range fields {
			if _, ok := s.Lookup(field); !ok {
				out = append(out, name+" / "+field)
			}
		}
	}
	sort.Strings(out)
	return out
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !equalValues(v, w) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}
