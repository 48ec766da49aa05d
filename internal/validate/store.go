package validate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/iiroan/itermprofile/internal/store"
)

// Store checks that the preferences file can be loaded and has a default
// profile to merge into.
func Store(path string, logger *log.Logger) Result {
	result := Result{}
	name := filepath.Base(path)

	doc, err := store.NewAccessor(path, logger).Load()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			result.AddError(fmt.Sprintf("iTerm2 preferences not found: %s", path))
			result.AddItem(StatusError, name, "not found")
			return result
		}
		result.AddError(fmt.Sprintf("Preferences: %v", err))
		result.AddItem(StatusError, name, err.Error())
		return result
	}
	result.AddItem(StatusSuccess, name, fmt.Sprintf("%s plist, %d profiles", doc.FormatName(), len(doc.Records())))

	guid := doc.DefaultGUID()
	if guid == "" {
		result.AddError("No default profile found")
		result.AddItem(StatusError, store.KeyDefaultGUID, "missing")
		return result
	}
	result.AddItem(StatusSuccess, store.KeyDefaultGUID, guid)

	rec, ok := doc.Record(guid)
	if !ok {
		result.AddError("Default profile not found in preferences")
		result.AddItem(StatusError, "Default profile", "no record with GUID "+guid)
		return result
	}
	result.AddItem(StatusSuccess, "Default profile", rec.Name())

	return result
}
