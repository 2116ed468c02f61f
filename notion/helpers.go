package notion

import "strings"

// DatabaseTitle extracts the plain-text title from a database object,
// joining its rich text segments with spaces. Returns "Untitled" when no
// title is present.
func DatabaseTitle(database map[string]any) string {
	if title := joinRichText(database["title"]); title != "" {
		return title
	}
	return "Untitled"
}

// PageTitle extracts the plain-text title from a page object by locating
// its title-typed property. Returns "Untitled" when no title is present.
func PageTitle(page map[string]any) string {
	properties, ok := page["properties"].(map[string]any)
	if !ok {
		return "Untitled"
	}

	for _, value := range properties {
		property, ok := value.(map[string]any)
		if !ok || property["type"] != "title" {
			continue
		}
		if title := joinRichText(property["title"]); title != "" {
			return title
		}
	}
	return "Untitled"
}

// joinRichText flattens a rich text array into its concatenated content.
func joinRichText(value any) string {
	segments, ok := value.([]any)
	if !ok {
		return ""
	}

	var parts []string
	for _, segment := range segments {
		entry, ok := segment.(map[string]any)
		if !ok {
			continue
		}
		text, ok := entry["text"].(map[string]any)
		if !ok {
			continue
		}
		if content, ok := text["content"].(string); ok {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " ")
}
