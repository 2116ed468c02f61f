package notion

// Property builders: small pure helpers that shape values into the
// property objects the API expects. None of them touch client state.

// TextProperty builds a rich text property value.
func TextProperty(text string) map[string]any {
	return map[string]any{
		"rich_text": []map[string]any{
			{"text": map[string]any{"content": text}},
		},
	}
}

// TitleProperty builds a title property value.
func TitleProperty(title string) map[string]any {
	return map[string]any{
		"title": []map[string]any{
			{"text": map[string]any{"content": title}},
		},
	}
}

// NumberProperty builds a number property value.
func NumberProperty(number float64) map[string]any {
	return map[string]any{"number": number}
}

// CheckboxProperty builds a checkbox property value.
func CheckboxProperty(checked bool) map[string]any {
	return map[string]any{"checkbox": checked}
}

// SelectProperty builds a select property value.
func SelectProperty(option string) map[string]any {
	return map[string]any{"select": map[string]any{"name": option}}
}

// MultiSelectProperty builds a multi-select property value.
func MultiSelectProperty(options ...string) map[string]any {
	selected := make([]map[string]any, len(options))
	for i, option := range options {
		selected[i] = map[string]any{"name": option}
	}
	return map[string]any{"multi_select": selected}
}

// DateProperty builds a date property value from ISO 8601 date strings.
// Pass an empty end for a single date rather than a range.
func DateProperty(start, end string) map[string]any {
	date := map[string]any{"start": start}
	if end != "" {
		date["end"] = end
	}
	return map[string]any{"date": date}
}

// URLProperty builds a URL property value.
func URLProperty(url string) map[string]any {
	return map[string]any{"url": url}
}

// EmailProperty builds an email property value.
func EmailProperty(email string) map[string]any {
	return map[string]any{"email": email}
}

// PhoneNumberProperty builds a phone number property value.
func PhoneNumberProperty(phone string) map[string]any {
	return map[string]any{"phone_number": phone}
}

// RelationProperty builds a relation property value from related page ids.
func RelationProperty(pageIDs ...string) map[string]any {
	related := make([]map[string]any, len(pageIDs))
	for i, id := range pageIDs {
		related[i] = map[string]any{"id": id}
	}
	return map[string]any{"relation": related}
}
