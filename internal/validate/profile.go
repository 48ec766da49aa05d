package validate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/iiroan/itermprofile/internal/merge"
	"github.com/iiroan/itermprofile/internal/profile"
	"github.com/iiroan/itermprofile/internal/store"
)

// ProfileFile loads and validates the profile at path.
func ProfileFile(path string) Result {
	p, err := profile.Load(path)
	if err != nil {
		result := Result{}
		name := filepath.Base(path)
		if errors.Is(err, profile.ErrNotFound) {
			result.AddError(fmt.Sprintf("Profile not found: %s", path))
			result.AddItem(StatusError, name, "not found")
			return result
		}
		result.AddError(fmt.Sprintf("Profile: %v", err))
		result.AddItem(StatusError, name, err.Error())
		return result
	}
	return Profile(p)
}

// Profile checks each section of p against the field mapping table. Every
// section is checked on its own so all structural problems are reported.
func Profile(p profile.Profile) Result {
	result := Result{}

	if len(p) == 0 {
		result.AddWarning("Profile is empty, nothing will be applied")
		result.AddItem(StatusWarning, "profile", "empty")
		return result
	}

	for _, s := range merge.Sections() {
		raw, ok := p[s.Name]
		if !ok {
			result.AddItem(StatusPending, s.Name, "not present, left unchanged")
			continue
		}

		report, err := merge.Plan(store.Record{}, profile.Profile{s.Name: raw})
		if err != nil {
			result.AddError(fmt.Sprintf("%s: %v", s.Name, err))
			result.AddItem(StatusError, s.Name, err.Error())
			continue
		}

		details := fmt.Sprintf("%d of %d fields", len(report.Changes), len(s.Fields))
		if len(report.Ignored) > 0 {
			result.AddItem(StatusWarning, s.Name, fmt.Sprintf("%s, %d unrecognized", details, len(report.Ignored)))
			for _, key := range report.Ignored {
				result.AddWarning(fmt.Sprintf("Unrecognized field ignored: %s", key))
			}
			continue
		}
		result.AddItem(StatusSuccess, s.Name, details)
	}

	for _, name := range p.SectionNames() {
		if _, ok := merge.LookupSection(name); !ok {
			result.AddWarning(fmt.Sprintf("Unrecognized section ignored: %s", name))
			result.AddItem(StatusWarning, name, "unrecognized section, ignored")
		}
	}

	return result
}
