package store

import "howett.net/plist"

// Keys used by iTerm2 in com.googlecode.iterm2.plist
const (
	KeyDefaultGUID = "Default Bookmark Guid"
	KeyBookmarks   = "New Bookmarks"
	KeyGUID        = "Guid"
	KeyName        = "Name"
)

// Document is the in-memory preferences tree.
// Root holds every key from the file, including ones this tool never touches.
type Document struct {
	Root   map[string]any
	Format int
}

// Record is a single profile (bookmark) inside the document.
// It shares storage with the document, so writes are visible on save.
type Record map[string]any

// NewDocument wraps root as an XML plist document
func NewDocument(root map[string]any) *Document {
	if root == nil {
		root = make(map[string]any)
	}
	return &Document{Root: root, Format: plist.XMLFormat}
}

// FormatName returns a human-readable name for the plist encoding
func (d *Document) FormatName() string {
	if name, ok := plist.FormatNames[d.Format]; ok {
		return name
	}
	return "unknown"
}

// DefaultGUID returns the identifier of the default profile, or "" if unset
func (d *Document) DefaultGUID() string {
	guid, _ := d.Root[KeyDefaultGUID].(string)
	return guid
}

// Records returns the profiles in stored order. Entries that are not
// dictionaries are skipped.
func (d *Document) Records() []Record {
	items, _ := d.Root[KeyBookmarks].([]any)
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records
}

// Record returns the first profile whose GUID matches guid
func (d *Document) Record(guid string) (Record, bool) {
	for _, r := range d.Records() {
		if r.GUID() == guid {
			return r, true
		}
	}
	return nil, false
}

// GUID returns the record identifier
func (r Record) GUID() string {
	guid, _ := r[KeyGUID].(string)
	return guid
}

// Name returns the record display name, falling back to "Default"
func (r Record) Name() string {
	if name, ok := r[KeyName].(string); ok && name != "" {
		return name
	}
	return "Default"
}
