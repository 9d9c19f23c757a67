// 패키지 export 는 검증된 컬렉션을 index.json 으로 내보낸다:
// - 공개 항목 목록(초안 제외, 발행일 내림차순)
// - 종류별 개수, 초안 수, 리뷰 브랜드별 개수 통계
// - 파일 쓰기는 호출자 몫. 피드와 함께 한 번에 교체하려고 바이트만 만든다
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cheongso-ryeok/internal/model"
)

// Encode 는 Build 결과를 들여쓰기한 JSON 바이트로 만든다.
func Encode(cols model.Collections, maxEntries int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Build(cols, maxEntries)); err != nil {
		return nil, fmt.Errorf("encode index json: %w", err)
	}
	return buf.Bytes(), nil
}
