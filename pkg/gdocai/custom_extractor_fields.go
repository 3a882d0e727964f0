package gdocai

import (
	"slices"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// ExtractCustomExtractorFields collects the mention texts of custom extractor
// entities by entity type. Nested properties are keyed by their path, e.g.
// "titelblatt/blatt", and also by their own type when that is not taken by a
// top-level entity. Duplicate mentions are dropped.
func ExtractCustomExtractorFields(docProto *documentaipb.Document) map[string][]string {
	fields := make(map[string][]string)
	nested := make(map[string][]string)

	for _, entity := range docProto.GetEntities() {
		if entity.GetType() == "" {
			continue
		}
		processEntity(entity, "", fields, nested)
	}

	for key, values := range nested {
		if _, taken := fields[key]; !taken {
			fields[key] = values
		}
	}
	return fields
}

// processEntity handles a single entity and its properties recursively
func processEntity(entity *documentaipb.Document_Entity, prefix string, fields, nested map[string][]string) {
	key := entity.GetType()
	if prefix != "" {
		addValue(nested, key, mentionText(entity))
		key = prefix + "/" + key
	}
	addValue(fields, key, mentionText(entity))

	for _, prop := range entity.GetProperties() {
		if prop.GetType() != "" {
			processEntity(prop, key, fields, nested)
		}
	}
}

// mentionText prefers the normalized value the extractor computed.
func mentionText(entity *documentaipb.Document_Entity) string {
	if text := entity.GetNormalizedValue().GetText(); text != "" {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(entity.GetMentionText())
}

// addValue appends value under key unless it is empty or already present
func addValue(fields map[string][]string, key, value string) {
	if key == "" || value == "" || slices.Contains(fields[key], value) {
		return
	}
	fields[key] = append(fields[key], value)
}
