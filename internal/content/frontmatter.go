package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// SplitFrontmatter 는 `---` 로 둘러싼 YAML 블록과 본문을 분리한다.
// frontmatter 가 없으면 nil 매핑과 원문 전체를 본문으로 돌려준다.
func SplitFrontmatter(src []byte) (map[string]any, []byte, error) {
	normalized := bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	normalized = bytes.TrimPrefix(normalized, []byte("\ufeff"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, normalized, nil
	}
	rest := normalized[4:]
	var meta, body []byte
	switch {
	case bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, fence):
		// 빈 frontmatter
		body = bytes.TrimPrefix(rest[len(fence):], []byte("\n"))
	default:
		idx := bytes.Index(rest, []byte("\n---\n"))
		if idx >= 0 {
			meta, body = rest[:idx], rest[idx+5:]
		} else if bytes.HasSuffix(rest, []byte("\n---")) {
			meta = rest[:len(rest)-4]
		} else {
			return nil, nil, fmt.Errorf("unterminated frontmatter")
		}
	}
	raw := map[string]any{}
	if len(bytes.TrimSpace(meta)) > 0 {
		if err := yaml.Unmarshal(meta, &raw); err != nil {
			return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
		}
	}
	return raw, body, nil
}
