// 패키지 markup 은 항목 본문(마크다운)을 피드용 HTML 로 바꾼다:
// - goldmark(GFM)로 렌더링
// - goquery 로 상대 href/src 를 사이트 기준 절대 URL 로 바꿈
package markup

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// importLine 은 MDX 의 import/export 줄. 마크다운으로 렌더링하지 않는다.
func importLine(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")
}

// Render 는 body 를 HTML 로 렌더링하고 링크를 pageURL 기준으로 절대화한다.
func Render(body []byte, pageURL string) (string, error) {
	var src bytes.Buffer
	for _, line := range strings.Split(string(body), "\n") {
		if importLine(line) {
			continue
		}
		src.WriteString(line)
		src.WriteByte('\n')
	}
	var out bytes.Buffer
	if err := md.Convert(src.Bytes(), &out); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return Absolutize(out.String(), pageURL)
}

// Absolutize 는 HTML 조각 안의 a[href], img[src] 를 base 기준 절대 URL 로 바꾼다.
func Absolutize(html, base string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	rewrite := func(sel, attr string) {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr(attr); ok {
				s.SetAttr(attr, Abs(base, v))
			}
		})
	}
	rewrite("a[href]", "href")
	rewrite("img[src]", "src")
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize html: %w", err)
	}
	return strings.TrimSpace(body), nil
}

// Abs 는 ref 를 base 기준으로 해석한다. 이미 절대 URL 이거나 조각(#), mailto 등은 그대로 둔다.
func Abs(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return ref
	}
	ru, err := url.Parse(ref)
	if err != nil || ru.Scheme != "" {
		return ref
	}
	bu, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return bu.ResolveReference(ru).String()
}
