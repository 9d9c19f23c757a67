package feed

import (
	"fmt"

	"github.com/gorilla/feeds"
)

// 채널 시각은 항목 날짜에서만 가져온다. 같은 소스면 출력 바이트도 같다.
func (f *Feed) document() *feeds.Feed {
	published, updated := f.Newest()
	home := f.Site.URL + "/"
	doc := &feeds.Feed{
		Title:       f.Site.Title,
		Link:        &feeds.Link{Href: home},
		Description: f.Site.Description,
		Id:          home,
		Created:     published,
		Updated:     updated,
		Items:       make([]*feeds.Item, 0, len(f.Items)),
	}
	if f.Site.AuthorEmail != "" {
		doc.Author = &feeds.Author{Name: f.Site.Author, Email: f.Site.AuthorEmail}
	}
	for _, it := range f.Items {
		doc.Items = append(doc.Items, &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: it.URL},
			Description: it.Description,
			Id:          it.URL,
			IsPermaLink: "true",
			Created:     it.PubDate,
			Updated:     it.Updated,
			Content:     it.Content,
		})
	}
	return doc
}

// RSS 는 RSS 2.0 문서를 만든다.
func (f *Feed) RSS() ([]byte, error) {
	channel := (&feeds.Rss{Feed: f.document()}).RssFeed()
	channel.Language = f.Site.Language()
	s, err := feeds.ToXML(channel)
	if err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return []byte(s), nil
}

// Atom 은 Atom 1.0 문서를 만든다.
func (f *Feed) Atom() ([]byte, error) {
	s, err := f.document().ToAtom()
	if err != nil {
		return nil, fmt.Errorf("encode atom: %w", err)
	}
	return []byte(s), nil
}

// JSON 은 JSON Feed 1.0 문서를 만든다.
func (f *Feed) JSON() ([]byte, error) {
	s, err := f.document().ToJSON()
	if err != nil {
		return nil, fmt.Errorf("encode json feed: %w", err)
	}
	return []byte(s), nil
}

// Format 은 직렬화 형식.
type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// ContentType 은 HTTP 응답용 미디어 타입.
func (ft Format) ContentType() string {
	switch ft {
	case FormatAtom:
		return "application/atom+xml; charset=utf-8"
	case FormatJSON:
		return "application/feed+json; charset=utf-8"
	default:
		return "application/rss+xml; charset=utf-8"
	}
}

// Encode 는 형식에 맞는 직렬화 함수를 호출한다.
func (f *Feed) Encode(ft Format) ([]byte, error) {
	switch ft {
	case FormatRSS:
		return f.RSS()
	case FormatAtom:
		return f.Atom()
	case FormatJSON:
		return f.JSON()
	}
	return nil, fmt.Errorf("unknown feed format %q", ft)
}
