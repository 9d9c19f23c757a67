// 패키지 feed 는 세 컬렉션을 하나의 피드로 합친다:
// - 초안(draft)을 빼고 /{kind}/{slug}/ 링크를 가진 항목으로 변환
// - 발행일 내림차순으로 안정 정렬(같은 날짜는 리뷰→비교→가이드, 슬러그 순)
// - RSS 2.0 / Atom / JSON Feed 로 직렬화, gofeed 로 결과를 다시 검증
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"cheongso-ryeok/internal/config"
	"cheongso-ryeok/internal/content"
	"cheongso-ryeok/internal/markup"
	"cheongso-ryeok/internal/model"
)

// Source 는 검증된 전체 컬렉션을 돌려주는 쪽. 보통 *content.Loader.
type Source interface {
	LoadAll(ctx context.Context) (model.Collections, error)
}

// Options 는 피드 생성 옵션.
type Options struct {
	MaxItems    int  // 0 이면 제한 없음
	FullContent bool // 본문 HTML 을 content:encoded 로 포함
}

// OptionsFrom 은 설정 파일의 FEED 블록에서 Options 를 만든다.
func OptionsFrom(c config.Feed) Options {
	return Options{MaxItems: c.MaxItems, FullContent: c.FullContent}
}

// Item 은 피드 항목 하나.
type Item struct {
	Kind        model.Kind
	ID          string
	Title       string
	Description string
	Link        string // 사이트 내부 경로 /{kind}/{slug}/
	URL         string // Link 를 사이트 URL 로 해석한 절대 주소
	PubDate     time.Time
	Updated     time.Time // max(pubDate, updatedDate)
	Content     string
}

// Feed 는 정렬이 끝난 항목과 채널 정보.
type Feed struct {
	Site  config.Site
	Items []Item
}

// Aggregate 는 src 에서 컬렉션을 읽어 피드를 만든다.
// 읽기에 실패하면 부분 결과 없이 *content.CollectionLoadError 를 돌려준다.
func Aggregate(ctx context.Context, src Source, site config.Site, opts Options) (*Feed, error) {
	cols, err := src.LoadAll(ctx)
	if err != nil {
		var cle *content.CollectionLoadError
		if !errors.As(err, &cle) {
			err = &content.CollectionLoadError{Err: err}
		}
		return nil, err
	}
	return New(cols, site, opts)
}

// New 는 이미 읽어 둔 컬렉션으로 피드를 만든다.
func New(cols model.Collections, site config.Site, opts Options) (*Feed, error) {
	items, err := Items(cols, site, opts)
	if err != nil {
		return nil, err
	}
	return &Feed{Site: site, Items: items}, nil
}

// Items 는 컬렉션을 피드 항목으로 바꾸고 정렬한다. 입력은 바꾸지 않는다.
func Items(cols model.Collections, site config.Site, opts Options) ([]Item, error) {
	base, err := url.Parse(site.URL)
	if err != nil {
		return nil, fmt.Errorf("parse site url %q: %w", site.URL, err)
	}
	all := cols.All()
	items := make([]Item, 0, len(all))
	for _, e := range all {
		meta := e.Record.Meta()
		if meta.Draft {
			continue
		}
		link := e.Link()
		it := Item{
			Kind:        e.Kind,
			ID:          e.ID,
			Title:       meta.Title,
			Description: meta.Description,
			Link:        link,
			URL:         base.ResolveReference(&url.URL{Path: link}).String(),
			PubDate:     meta.PubDate,
			Updated:     meta.PubDate,
		}
		if meta.UpdatedDate.After(it.Updated) {
			it.Updated = meta.UpdatedDate
		}
		if opts.FullContent {
			html, err := markup.Render(e.Body, it.URL)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", e.Kind, e.ID, err)
			}
			it.Content = html
		}
		items = append(items, it)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].PubDate.After(items[j].PubDate) })
	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		items = items[:opts.MaxItems]
	}
	return items, nil
}

// Newest 는 가장 최근 발행일과 가장 최근 수정일을 돌려준다. 항목이 없으면 0 값.
func (f *Feed) Newest() (published, updated time.Time) {
	for _, it := range f.Items {
		if it.PubDate.After(published) {
			published = it.PubDate
		}
		if it.Updated.After(updated) {
			updated = it.Updated
		}
	}
	return published, updated
}
