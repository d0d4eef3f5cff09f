package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

var (
	reCodeFence     = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")
	reTrailingComma = regexp.MustCompile(`,\s*([}\]])`)

	ErrNoJSON = errors.New("no JSON object in AI response")
)

// ExtractJSON: buang code fence & teks di luar rentang { ... } / [ ... ]
func ExtractJSON(text string) string {
	s := strings.TrimSpace(text)
	if m := reCodeFence.FindStringSubmatch(s); len(m) == 2 {
		s = strings.TrimSpace(m[1])
	}
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	s = s[start:]
	closer := "}"
	if s[0] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(s, closer); end >= 0 {
		return s[:end+1]
	}
	return s
}

func stripTrailingCommas(s string) string {
	return reTrailingComma.ReplaceAllString(s, "$1")
}

// closeOpenBrackets: tutup string/bracket yang masih terbuka (respons terpotong)
func closeOpenBrackets(s string) string {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// truncateToLastObject: potong setelah '}' terakhir (objek terakhir yang utuh)
func truncateToLastObject(s string) string {
	if i := strings.LastIndex(s, "}"); i >= 0 {
		return s[:i+1]
	}
	return s
}

// ParseAIJSON mem-parse teks respons model ke out.
// Percobaan 1: ekstrak rentang JSON + hapus trailing comma.
// Percobaan 2: potong ke '}' terakhir lalu tutup bracket yang terbuka.
func ParseAIJSON(text string, out any) error {
	raw := strings.TrimSpace(text)
	if m := reCodeFence.FindStringSubmatch(raw); len(m) == 2 {
		raw = strings.TrimSpace(m[1])
	} else if strings.HasPrefix(raw, "```") {
		// fence pembuka tanpa penutup (respons terpotong)
		raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(raw, "```json"), "```"))
	}
	start := strings.IndexAny(raw, "{[")
	if start < 0 {
		return ErrNoJSON
	}
	raw = raw[start:]

	first := stripTrailingCommas(ExtractJSON(raw))
	err := sonic.UnmarshalString(first, out)
	if err == nil {
		return nil
	}

	repaired := closeOpenBrackets(stripTrailingCommas(truncateToLastObject(raw)))
	repaired = stripTrailingCommas(repaired)
	if err2 := sonic.UnmarshalString(repaired, out); err2 != nil {
		return err
	}
	return nil
}
