package utils

import (
	"encoding/json"
	"net/http"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrInt32(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

// TrimmedPtr returns the trimmed value of s, or "" when s is nil.
func TrimmedPtr(s *string) string {
	return strings.TrimSpace(PtrString(s))
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// Pagination resolves optional limit/page arguments into limit and offset.
// Limit defaults to 20 and is capped at 100, page starts at 1.
func Pagination(limit, page *int32) (int32, int32) {
	finalLimit := int32(20)
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if page != nil && *page > 0 {
		finalPage = *page
	}

	return finalLimit, (finalPage - 1) * finalLimit
}
