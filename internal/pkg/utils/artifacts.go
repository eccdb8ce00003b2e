package utils

import "encoding/json"

// ArtifactsToString converts a filename list to a JSON string (safe for DB)
func ArtifactsToString(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(names)
	return string(data)
}

// StringToArtifacts converts the DB string back to []string.
// A malformed value degrades to an empty list rather than failing the read.
func StringToArtifacts(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var names []string
	if err := json.Unmarshal([]byte(s), &names); err != nil {
		return []string{}
	}
	return names
}
