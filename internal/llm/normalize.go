package llm

import (
	"encoding/json"
	"strings"

	"github.com/mockmate/interview-api/internal/domain"
)

// Normalize parses a raw model reply into a structured Reply. Models are
// instructed to emit bare JSON but routinely wrap it in markdown fences or
// surround it with prose, so parsing runs as an ordered chain of strategies
// with a guaranteed terminal default. Never fails.
func Normalize(raw string) *domain.Reply {
	candidates := []string{
		extractFenced(raw, "```json"),
		extractFenced(raw, "```"),
		raw,
		extractBraced(raw),
	}

	reply := &domain.Reply{TextResponse: raw}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		var parsed domain.Reply
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			reply = &parsed
			break
		}
	}

	if reply.VoiceResponse == "" {
		reply.VoiceResponse = reply.TextResponse
	}
	return reply
}

// extractFenced returns the interior of the first code fence opened by marker,
// or "" when no complete fence exists.
func extractFenced(content, marker string) string {
	start := strings.Index(content, marker)
	if start == -1 {
		return ""
	}
	interior := content[start+len(marker):]

	end := strings.Index(interior, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(interior[:end])
}

// extractBraced returns the widest brace-delimited span of the text, from the
// first "{" to the last "}", or "" when none exists.
func extractBraced(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}
