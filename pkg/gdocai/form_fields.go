package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// ExtractFormFields combines form fields from all pages into a single map.
// Labels are normalized by formFieldKey; values of repeated labels are kept
// in page order.
func ExtractFormFields(docProto *documentaipb.Document) map[string][]string {
	fields := make(map[string][]string)

	for _, page := range docProto.GetPages() {
		for _, field := range page.GetFormFields() {
			addValue(fields,
				formFieldKey(textFromLayout(field.GetFieldName(), docProto.GetText())),
				strings.TrimSpace(textFromLayout(field.GetFieldValue(), docProto.GetText())),
			)
		}
	}

	return fields
}

// formFieldKey lowercases a label and drops a trailing colon, so that
// "Grundbuch von:" and the entity type "grundbuch_von" meet.
func formFieldKey(label string) string {
	label = strings.TrimSpace(label)
	label = strings.TrimSuffix(label, ":")
	label = strings.ReplaceAll(label, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
