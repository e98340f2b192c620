package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula/internal/domains/reservation/model"
)

func window(t *testing.T, start, end string) model.Window {
	t.Helper()

	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)

	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)

	return model.Window{Start: s, End: e}
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        model.Window
		b        model.Window
		overlaps bool
	}{
		{
			name:     "partial overlap",
			a:        window(t, "2026-01-05T10:00:00+05:30", "2026-01-05T11:00:00+05:30"),
			b:        window(t, "2026-01-05T10:30:00+05:30", "2026-01-05T11:30:00+05:30"),
			overlaps: true,
		},
		{
			name:     "containment",
			a:        window(t, "2026-01-05T09:00:00+05:30", "2026-01-05T12:00:00+05:30"),
			b:        window(t, "2026-01-05T10:00:00+05:30", "2026-01-05T11:00:00+05:30"),
			overlaps: true,
		},
		{
			name:     "touching boundaries do not overlap",
			a:        window(t, "2026-01-05T10:00:00+05:30", "2026-01-05T11:00:00+05:30"),
			b:        window(t, "2026-01-05T11:00:00+05:30", "2026-01-05T12:00:00+05:30"),
			overlaps: false,
		},
		{
			name:     "disjoint",
			a:        window(t, "2026-01-05T10:00:00+05:30", "2026-01-05T11:00:00+05:30"),
			b:        window(t, "2026-01-05T13:00:00+05:30", "2026-01-05T14:00:00+05:30"),
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewWindow(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	_, err := model.NewWindow(start, start)
	assert.Error(t, err)

	_, err = model.NewWindow(start.Add(time.Hour), start)
	assert.Error(t, err)

	w, err := model.NewWindow(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, w.Duration())
}

func TestAudienceFilterMatches(t *testing.T) {
	tests := []struct {
		name    string
		filter  model.AudienceFilter
		tag     string
		matches bool
	}{
		{name: "disjoint cohorts", filter: model.AudienceFilter{"Sem 5"}, tag: "Sem 3", matches: false},
		{name: "same cohort", filter: model.AudienceFilter{"Sem 3"}, tag: "Sem 3", matches: true},
		{name: "filter containing the tag", filter: model.AudienceFilter{"Sem 3", "Sem 5"}, tag: "Sem 3", matches: true},
		{name: "all filter matches any tag", filter: model.AudienceFilter{"All"}, tag: "Sem 3", matches: true},
		{name: "empty filter means all", filter: nil, tag: "Sem 3", matches: true},
		{name: "all tag blocks narrow filter", filter: model.AudienceFilter{"Sem 5"}, tag: "All", matches: true},
		{name: "untagged blocks everyone", filter: model.AudienceFilter{"Sem 5"}, tag: "", matches: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.filter.Matches(tt.tag))
		})
	}
}

func TestDescriptionCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, tag := range []string{"Sem 1", "Sem 4", "Sem 12", "All"} {
			encoded := model.EncodeDescription(tag, "CSE")
			decoded, branch := model.DecodeDescription(encoded)
			assert.Equal(t, tag, decoded)
			assert.Equal(t, "CSE", branch)
		}
	})

	t.Run("encode without branch", func(t *testing.T) {
		assert.Equal(t, "Semester: Sem 4", model.EncodeDescription("Sem 4", ""))
	})

	t.Run("empty tag encodes as all", func(t *testing.T) {
		assert.Equal(t, "Semester: All", model.EncodeDescription("", ""))
	})

	t.Run("decode never fails", func(t *testing.T) {
		for _, desc := range []string{"", "weekly maintenance", "Semester:", "Branch: ECE"} {
			tag, _ := model.DecodeDescription(desc)
			assert.Equal(t, "All", tag)
		}
	})

	t.Run("decode with surrounding prose", func(t *testing.T) {
		tag, branch := model.DecodeDescription("Room 204. Semester: Sem 3 | Branch: ECE | Lab session")
		assert.Equal(t, "Sem 3", tag)
		assert.Equal(t, "ECE", branch)
	})
}

func TestNormalizeSemester(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "4th Semester", want: "Sem 4"},
		{raw: "Semester 6", want: "Sem 6"},
		{raw: "Sem 3", want: "Sem 3"},
		{raw: "12th Semester", want: "Sem 12"},
		{raw: "Unknown Semester", want: "All"},
		{raw: "", want: "All"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, model.NormalizeSemester(tt.raw))
		})
	}
}
