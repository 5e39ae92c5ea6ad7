package metadata

// extractImageField returns the first non-empty string value among
// imageFieldNames present in a parsed JSON object, or "" if doc is not an
// object or carries none of them.
func extractImageField(doc any) string {
	obj, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	for _, name := range imageFieldNames {
		if v, ok := obj[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
