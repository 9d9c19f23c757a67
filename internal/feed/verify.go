package feed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// Verify 는 만들어진 문서를 gofeed 로 다시 읽어서
// 형식이 올바른지, 항목 수와 발행일 내림차순이 유지되는지 확인한다.
// Atom 은 항목 날짜가 updated 로 대체될 수 있어 순서는 보지 않는다.
func Verify(doc []byte, wantItems int) error {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("parse generated feed: %w", err)
	}
	if len(parsed.Items) != wantItems {
		return fmt.Errorf("generated feed has %d items, want %d", len(parsed.Items), wantItems)
	}
	var prev *time.Time
	for i, it := range parsed.Items {
		if it.Link == "" {
			return fmt.Errorf("item %d (%q) has no link", i, it.Title)
		}
		date := it.PublishedParsed
		if date == nil {
			date = it.UpdatedParsed
		}
		if date == nil {
			return fmt.Errorf("item %d (%q) has no date", i, it.Title)
		}
		if parsed.FeedType != "atom" && prev != nil && date.After(*prev) {
			return fmt.Errorf("item %d (%q) is newer than the item before it", i, it.Title)
		}
		prev = date
	}
	return nil
}
