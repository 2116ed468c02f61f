package notion

import (
	"reflect"
	"testing"
)

func TestTextAndTitleProperties(t *testing.T) {
	text := TextProperty("hello")
	segments := text["rich_text"].([]map[string]any)
	if len(segments) != 1 || segments[0]["text"].(map[string]any)["content"] != "hello" {
		t.Errorf("unexpected text property: %v", text)
	}

	title := TitleProperty("My Page")
	segments = title["title"].([]map[string]any)
	if len(segments) != 1 || segments[0]["text"].(map[string]any)["content"] != "My Page" {
		t.Errorf("unexpected title property: %v", title)
	}
}

func TestScalarProperties(t *testing.T) {
	if got := NumberProperty(42.5); got["number"] != 42.5 {
		t.Errorf("unexpected number property: %v", got)
	}
	if got := CheckboxProperty(true); got["checkbox"] != true {
		t.Errorf("unexpected checkbox property: %v", got)
	}
	if got := URLProperty("https://example.com"); got["url"] != "https://example.com" {
		t.Errorf("unexpected url property: %v", got)
	}
	if got := EmailProperty("a@b.c"); got["email"] != "a@b.c" {
		t.Errorf("unexpected email property: %v", got)
	}
	if got := PhoneNumberProperty("+1-555-0100"); got["phone_number"] != "+1-555-0100" {
		t.Errorf("unexpected phone property: %v", got)
	}
}

func TestSelectProperties(t *testing.T) {
	sel := SelectProperty("Done")
	if sel["select"].(map[string]any)["name"] != "Done" {
		t.Errorf("unexpected select property: %v", sel)
	}

	multi := MultiSelectProperty("a", "b")
	want := []map[string]any{{"name": "a"}, {"name": "b"}}
	if !reflect.DeepEqual(multi["multi_select"], want) {
		t.Errorf("unexpected multi-select property: %v", multi)
	}
}

func TestDateProperty(t *testing.T) {
	single := DateProperty("2026-01-01", "")
	date := single["date"].(map[string]any)
	if date["start"] != "2026-01-01" {
		t.Errorf("unexpected start: %v", date)
	}
	if _, ok := date["end"]; ok {
		t.Error("expected no end key for a single date")
	}

	ranged := DateProperty("2026-01-01", "2026-01-31")
	date = ranged["date"].(map[string]any)
	if date["end"] != "2026-01-31" {
		t.Errorf("unexpected end: %v", date)
	}
}

func TestRelationProperty(t *testing.T) {
	rel := RelationProperty("p1", "p2")
	want := []map[string]any{{"id": "p1"}, {"id": "p2"}}
	if !reflect.DeepEqual(rel["relation"], want) {
		t.Errorf("unexpected relation property: %v", rel)
	}
}
