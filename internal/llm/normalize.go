package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/msomdec/careerforge/internal/domain"
)

// StripCodeFences removes a leading ``` fence (with optional language tag)
// and a trailing ``` fence from a model reply, trimming surrounding space.
func StripCodeFences(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		// Drop the language tag, e.g. "json", up to the first newline.
		if i := strings.IndexAny(clean, "\r\n"); i >= 0 && !strings.ContainsAny(clean[:i], "{[\"") {
			clean = clean[i:]
		} else if strings.HasPrefix(clean, "json") {
			clean = strings.TrimPrefix(clean, "json")
		}
	}
	clean = strings.TrimSpace(clean)
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// DecodeJSON strips code fences from raw and unmarshals the remainder into dst.
func DecodeJSON(raw string, dst any) error {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty body", domain.ErrParse)
	}
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return nil
}
