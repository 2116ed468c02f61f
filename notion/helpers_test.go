package notion

import "testing"

func richText(contents ...string) []any {
	segments := make([]any, len(contents))
	for i, content := range contents {
		segments[i] = map[string]any{
			"text": map[string]any{"content": content},
		}
	}
	return segments
}

func TestDatabaseTitle(t *testing.T) {
	tests := []struct {
		name     string
		database map[string]any
		want     string
	}{
		{"single segment", map[string]any{"title": richText("Tasks")}, "Tasks"},
		{"joined segments", map[string]any{"title": richText("Team", "Tasks")}, "Team Tasks"},
		{"empty title", map[string]any{"title": richText()}, "Untitled"},
		{"missing title", map[string]any{}, "Untitled"},
		{"wrong shape", map[string]any{"title": "not rich text"}, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DatabaseTitle(tt.database); got != tt.want {
				t.Errorf("DatabaseTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageTitle(t *testing.T) {
	page := map[string]any{
		"properties": map[string]any{
			"Status": map[string]any{"type": "select"},
			"Name": map[string]any{
				"type":  "title",
				"title": richText("Weekly", "Report"),
			},
		},
	}
	if got := PageTitle(page); got != "Weekly Report" {
		t.Errorf("PageTitle = %q, want %q", got, "Weekly Report")
	}
}

func TestPageTitleFallsBack(t *testing.T) {
	tests := []struct {
		name string
		page map[string]any
	}{
		{"no properties", map[string]any{}},
		{"no title property", map[string]any{
			"properties": map[string]any{
				"Status": map[string]any{"type": "select"},
			},
		}},
		{"empty title property", map[string]any{
			"properties": map[string]any{
				"Name": map[string]any{"type": "title", "title": richText()},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageTitle(tt.page); got != "Untitled" {
				t.Errorf("PageTitle = %q, want %q", got, "Untitled")
			}
		})
	}
}
