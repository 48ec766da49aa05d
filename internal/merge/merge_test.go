package merge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/iiroan/itermprofile/internal/profile"
	"github.com/iiroan/itermprofile/internal/store"
)

func baseDocument() *store.Document {
	return store.NewDocument(map[string]any{
		store.KeyDefaultGUID: "G1",
		store.KeyBookmarks: []any{
			map[string]any{
				store.KeyGUID: "G0",
				store.KeyName: "Other",
				"Columns":     int64(100),
				"Rows":        int64(30),
			},
			map[string]any{
				store.KeyGUID:  "G1",
				store.KeyName:  "Main",
				"Columns":      int64(80),
				"Rows":         int64(24),
				"Transparency": 0.0,
				"Normal Font":  "Monaco 12",
				"Cursor Type":  int64(2),
				"Background Color": map[string]any{
					"Red Component":   0.0,
					"Green Component": 0.0,
					"Blue Component":  0.0,
					"Color Space":     "sRGB",
					"Alpha Component": 1.0,
				},
				"Badge Text": "keep me",
			},
		},
		"SUEnableAutomaticChecks": true,
	})
}

func record(t require.TestingT, doc *store.Document, guid string) store.Record {
	rec, ok := doc.Record(guid)
	require.True(t, ok)
	return rec
}

func TestExpandColor(t *testing.T) {
	got, err := ExpandColor(map[string]any{"Red": 0.118, "Green": 0.122, "Blue": 0.149})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"Red Component":   0.118,
		"Green Component": 0.122,
		"Blue Component":  0.149,
		"Color Space":     "sRGB",
		"Alpha Component": 1.0,
	}, got)
}

func TestExpandColor_Variants(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "alpha carried over",
			input: map[string]any{"Red": 1.0, "Green": 0.5, "Blue": 0.0, "Alpha": 0.25},
			want: map[string]any{
				"Red Component": 1.0, "Green Component": 0.5, "Blue Component": 0.0,
				"Color Space": "sRGB", "Alpha Component": 0.25,
			},
		},
		{
			name:  "integers become reals",
			input: map[string]any{"Red": int64(1), "Green": 0, "Blue": uint64(1)},
			want: map[string]any{
				"Red Component": 1.0, "Green Component": 0.0, "Blue Component": 1.0,
				"Color Space": "sRGB", "Alpha Component": 1.0,
			},
		},
		{
			name:  "out of range passes through",
			input: map[string]any{"Red": 2.5, "Green": -1.0, "Blue": 0.5},
			want: map[string]any{
				"Red Component": 2.5, "Green Component": -1.0, "Blue Component": 0.5,
				"Color Space": "sRGB", "Alpha Component": 1.0,
			},
		},
		{
			name:    "missing channel",
			input:   map[string]any{"Red": 1.0, "Green": 1.0},
			wantErr: true,
		},
		{
			name:    "non numeric channel",
			input:   map[string]any{"Red": "ff", "Green": 1.0, "Blue": 1.0},
			wantErr: true,
		},
		{
			name:    "non numeric alpha",
			input:   map[string]any{"Red": 1.0, "Green": 1.0, "Blue": 1.0, "Alpha": true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidColor))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_WindowExample(t *testing.T) {
	doc := baseDocument()
	p := profile.Profile{"Window": map[string]any{"Columns": 120, "Rows": 35}}

	report, err := Apply(doc, p)
	require.NoError(t, err)

	rec := record(t, doc, "G1")
	assert.Equal(t, 120, rec["Columns"])
	assert.Equal(t, 35, rec["Rows"])
	assert.Equal(t, 0.0, rec["Transparency"])

	assert.Equal(t, "G1", report.GUID)
	assert.Equal(t, "Main", report.Name)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Window", report.Sections[0].Name)
	assert.Len(t, report.Changes, 2)
	assert.Len(t, report.Modified(), 2)
	assert.Empty(t, report.Ignored)
}

func TestApply_OnlyTargetRecordChanges(t *testing.T) {
	doc := baseDocument()
	p := profile.Profile{
		"Window": map[string]any{"Columns": 132},
		"Font":   map[string]any{"Normal Font": "MesloLGS-NF-Regular 13"},
	}

	_, err := Apply(doc, p)
	require.NoError(t, err)

	other := record(t, doc, "G0")
	assert.Equal(t, int64(100), other["Columns"])
	assert.NotContains(t, other, "Normal Font")

	main := record(t, doc, "G1")
	assert.Equal(t, 132, main["Columns"])
	assert.Equal(t, "MesloLGS-NF-Regular 13", main["Normal Font"])
	assert.Equal(t, true, doc.Root["SUEnableAutomaticChecks"])
}

func TestApply_ColorsAreExpanded(t *testing.T) {
	doc := baseDocument()
	p := profile.Profile{"Colors": map[string]any{
		"Ansi 3 Color":     map[string]any{"Red": 0.9, "Green": 0.75, "Blue": 0.48},
		"Background Color": map[string]any{"Red": 0.118, "Green": 0.122, "Blue": 0.149},
	}}

	report, err := Apply(doc, p)
	require.NoError(t, err)

	rec := record(t, doc, "G1")
	assert.Equal(t, map[string]any{
		"Red Component":   0.118,
		"Green Component": 0.122,
		"Blue Component":  0.149,
		"Color Space":     "sRGB",
		"Alpha Component": 1.0,
	}, rec["Background Color"])
	ansi, ok := rec["Ansi 3 Color"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.9, ansi["Red Component"])

	changes := report.SectionChanges("Colors")
	require.Len(t, changes, 2)
	assert.Equal(t, "Ansi 3 Color", changes[0].Field, "table order, not profile order")
	assert.False(t, changes[0].Existed)
}

func TestApply_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc *store.Document)
		profile profile.Profile
		want    error
	}{
		{
			name:   "empty default guid",
			mutate: func(doc *store.Document) { doc.Root[store.KeyDefaultGUID] = "" },
			want:   ErrNoDefaultTarget,
		},
		{
			name:   "missing default guid",
			mutate: func(doc *store.Document) { delete(doc.Root, store.KeyDefaultGUID) },
			want:   ErrNoDefaultTarget,
		},
		{
			name:   "unknown default guid",
			mutate: func(doc *store.Document) { doc.Root[store.KeyDefaultGUID] = "G9" },
			want:   ErrTargetNotFound,
		},
		{
			name:   "no bookmarks",
			mutate: func(doc *store.Document) { delete(doc.Root, store.KeyBookmarks) },
			want:   ErrTargetNotFound,
		},
		{
			name: "malformed color",
			profile: profile.Profile{
				"Window": map[string]any{"Columns": 200},
				"Colors": map[string]any{"Cursor Color": map[string]any{"Red": 1.0}},
			},
			want: ErrInvalidColor,
		},
		{
			name:    "color is not a mapping",
			profile: profile.Profile{"Colors": map[string]any{"Cursor Color": "#ffffff"}},
			want:    ErrInvalidColor,
		},
		{
			name:    "section is not a mapping",
			profile: profile.Profile{"Window": []any{120, 35}},
			want:    ErrInvalidSection,
		},
		{
			name:    "null value",
			profile: profile.Profile{"Font": map[string]any{"Normal Font": nil}},
			want:    ErrNullValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := baseDocument()
			if tt.mutate != nil {
				tt.mutate(doc)
			}
			p := tt.profile
			if p == nil {
				p = profile.Profile{"Window": map[string]any{"Columns": 120}}
			}

			report, err := Apply(doc, p)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			if rec, ok := doc.Record("G1"); ok {
				assert.Equal(t, int64(80), rec["Columns"], "record must not be touched on failure")
			}
		})
	}
}

func TestApply_FieldErrorLocation(t *testing.T) {
	_, err := Apply(baseDocument(), profile.Profile{
		"Colors": map[string]any{"Ansi 7 Color": map[string]any{"Green": 1.0, "Blue": 1.0}},
	})

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "Colors", fieldErr.Section)
	assert.Equal(t, "Ansi 7 Color", fieldErr.Field)
	assert.Contains(t, err.Error(), "missing Red")
}

func TestApply_NilDocument(t *testing.T) {
	_, err := Apply(nil, profile.Profile{})
	assert.Error(t, err)
}

func TestApply_EmptyProfile(t *testing.T) {
	doc := baseDocument()

	report, err := Apply(doc, profile.Profile{})
	require.NoError(t, err)

	assert.Empty(t, report.Sections)
	assert.Empty(t, report.Changes)
	assert.Equal(t, baseDocument().Root, doc.Root)
}

func TestApply_UnknownFieldsIgnored(t *testing.T) {
	doc := baseDocument()
	p := profile.Profile{
		"Window": map[string]any{"Columns": 90, "Title Components": 32},
		"Badges": map[string]any{"Badge Text": "overwritten?"},
		"Colors": map[string]any{"Selection Color": map[string]any{"Red": 1.0}},
	}

	report, err := Apply(doc, p)
	require.NoError(t, err)

	rec := record(t, doc, "G1")
	assert.Equal(t, 90, rec["Columns"])
	assert.NotContains(t, rec, "Title Components")
	assert.NotContains(t, rec, "Selection Color")
	assert.Equal(t, "keep me", rec["Badge Text"])
	assert.Equal(t, []string{"Badges", "Colors / Selection Color", "Window / Title Components"}, report.Ignored)
}

func TestApply_SectionNamesAreLiteralKeys(t *testing.T) {
	doc := baseDocument()
	p := profile.Profile{
		"Window":         map[string]any{"Columns": 100},
		"Window.Columns": 5,
		"$.Window":       map[string]any{"Columns": 7},
	}

	report, err := Apply(doc, p)
	require.NoError(t, err)

	assert.Equal(t, 100, record(t, doc, "G1")["Columns"])
	assert.Len(t, report.Changes, 1)
	assert.Equal(t, []string{"$.Window", "Window.Columns"}, report.Ignored)
}

func TestApply_NullSectionIsInvalid(t *testing.T) {
	doc := baseDocument()

	_, err := Apply(doc, profile.Profile{"Window": nil})
	require.ErrorIs(t, err, ErrInvalidSection)
	assert.EqualValues(t, 80, record(t, doc, "G1")["Columns"])
}

func TestApply_ReportsUnchangedWrites(t *testing.T) {
	doc := baseDocument()
	p := profile.Profile{
		"Window": map[string]any{"Columns": 80, "Rows": 40},
		"Cursor": map[string]any{"Cursor Type": 2.0},
	}

	report, err := Apply(doc, p)
	require.NoError(t, err)

	assert.Len(t, report.Changes, 3)
	modified := report.Modified()
	require.Len(t, modified, 1)
	assert.Equal(t, "Rows", modified[0].Key)
	assert.EqualValues(t, 24, modified[0].Before)
}

func TestPlan_DoesNotMutate(t *testing.T) {
	doc := baseDocument()
	rec := record(t, doc, "G1")

	report, err := Plan(rec, profile.Builtin())
	require.NoError(t, err)

	assert.Len(t, report.Sections, len(Sections()))
	assert.Equal(t, baseDocument().Root, doc.Root)
}

func TestSections_Table(t *testing.T) {
	all := Sections()
	names := make([]string, 0, len(all))
	total := 0
	for _, s := range all {
		names = append(names, s.Name)
		total += len(s.Fields)
		for _, f := range s.Fields {
			assert.Equal(t, f.Name, f.Key)
			if s.Name == "Colors" {
				assert.Equal(t, Color, f.Kind)
			} else {
				assert.Equal(t, Verbatim, f.Kind)
			}
		}
	}

	assert.Equal(t, []string{"Colors", "Font", "Window", "Terminal", "Cursor", "Keyboard", "Session"}, names)
	assert.Equal(t, 20+8+5+5+2+2+2, total)

	colors, ok := LookupSection("Colors")
	require.True(t, ok)
	_, ok = colors.Lookup("Ansi 15 Color")
	assert.True(t, ok)
	_, ok = colors.Lookup("Ansi 16 Color")
	assert.False(t, ok)
	_, ok = LookupSection("Badges")
	assert.False(t, ok)
}

var verbatimValue = rapid.OneOf(
	rapid.Int64Range(-1000, 100000).AsAny(),
	rapid.Float64Range(0, 100).AsAny(),
	rapid.Bool().AsAny(),
	rapid.StringMatching(`[A-Za-z0-9 -]{0,16}`).AsAny(),
)

func drawProfile(t *rapid.T) profile.Profile {
	p := profile.Profile{}
	for _, s := range Sections() {
		if !rapid.Bool().Draw(t, "section "+s.Name) {
			continue
		}
		fields := map[string]any{}
		for _, f := range s.Fields {
			if !rapid.Bool().Draw(t, "field "+f.Name) {
				continue
			}
			if f.Kind == Color {
				fields[f.Name] = map[string]any{
					"Red":   rapid.Float64Range(0, 1).Draw(t, f.Name+" red"),
					"Green": rapid.Float64Range(0, 1).Draw(t, f.Name+" green"),
					"Blue":  rapid.Float64Range(0, 1).Draw(t, f.Name+" blue"),
				}
				continue
			}
			fields[f.Name] = verbatimValue.Draw(t, f.Name)
		}
		if rapid.Bool().Draw(t, "unknown field in "+s.Name) {
			fields["Unknown Field"] = verbatimValue.Draw(t, "unknown value")
		}
		p[s.Name] = fields
	}
	if rapid.Bool().Draw(t, "unknown section") {
		p["Badges"] = map[string]any{"Badge Text": "ignored"}
	}
	return p
}

func TestApply_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := drawProfile(t)

		once := baseDocument()
		_, err := Apply(once, p)
		require.NoError(t, err)

		twice := baseDocument()
		_, err = Apply(twice, p)
		require.NoError(t, err)
		second, err := Apply(twice, p)
		require.NoError(t, err)

		assert.Equal(t, once.Root, twice.Root)
		assert.Empty(t, second.Modified(), "second application should change nothing")
	})
}

func TestApply_PartialUpdate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := drawProfile(t)
		doc := baseDocument()

		report, err := Apply(doc, p)
		require.NoError(t, err)

		written := map[string]bool{}
		for _, c := range report.Changes {
			written[c.Key] = true
		}

		before := record(t, baseDocument(), "G1")
		after := record(t, doc, "G1")
		for key, value := range before {
			if written[key] {
				continue
			}
			assert.Equal(t, value, after[key], "untouched key %q changed", key)
		}
		for key := range after {
			if _, ok := before[key]; !ok {
				assert.True(t, written[key], "unexpected key %q", key)
			}
		}

		assert.Equal(t, record(t, baseDocument(), "G0"), record(t, doc, "G0"))
		assert.NotContains(t, after, "Unknown Field")
	})
}
