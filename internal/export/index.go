package export

import (
	"sort"
	"time"

	"cheongso-ryeok/internal/model"
)

// Entry 는 index.json 의 항목 하나. 종류별 필드는 해당 종류에서만 채운다.
type Entry struct {
	Kind         model.Kind   `json:"kind"`
	Slug         string       `json:"slug"`
	Link         string       `json:"link"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PubDate      time.Time    `json:"pubDate"`
	UpdatedDate  *time.Time   `json:"updatedDate,omitempty"`
	Type         string       `json:"type,omitempty"`
	TypeCode     string       `json:"typeCode,omitempty"`
	Brand        string       `json:"brand,omitempty"`
	Product      string       `json:"product,omitempty"`
	Rating       float64      `json:"rating,omitempty"`
	Products     []string     `json:"products,omitempty"`
	Winner       string       `json:"winner,omitempty"`
	Category     string       `json:"category,omitempty"`
	CategoryCode string       `json:"categoryCode,omitempty"`
	HeroImage    *model.Image `json:"heroImage,omitempty"`
}

// Stats 는 컬렉션 통계. 초안도 Total/Drafts 에는 포함된다.
type Stats struct {
	Total     int                `json:"total"`
	Published int                `json:"published"`
	Drafts    int                `json:"drafts"`
	PerKind   map[model.Kind]int `json:"per_kind"`
	Brands    map[string]int     `json:"brands"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Index 는 index.json 전체.
type Index struct {
	Stats   Stats   `json:"stats"`
	Entries []Entry `json:"entries"`
}

// Build 는 컬렉션에서 공개 항목 목록과 통계를 만든다.
// 항목은 발행일 내림차순, maxEntries 가 0 보다 크면 그만큼만 남긴다.
// UpdatedAt 은 가장 최근 항목 날짜라서 같은 입력이면 결과도 같다.
func Build(cols model.Collections, maxEntries int) Index {
	st := Stats{PerKind: map[model.Kind]int{}, Brands: map[string]int{}}
	entries := []Entry{}
	for _, e := range cols.All() {
		st.Total++
		meta := e.Record.Meta()
		if meta.Draft {
			st.Drafts++
			continue
		}
		st.Published++
		st.PerKind[e.Kind]++
		out := Entry{
			Kind:        e.Kind,
			Slug:        e.ID,
			Link:        e.Link(),
			Title:       meta.Title,
			Description: meta.Description,
			PubDate:     meta.PubDate,
			HeroImage:   meta.HeroImage,
		}
		if !meta.UpdatedDate.IsZero() {
			u := meta.UpdatedDate
			out.UpdatedDate = &u
		}
		latest := meta.PubDate
		if meta.UpdatedDate.After(latest) {
			latest = meta.UpdatedDate
		}
		if latest.After(st.UpdatedAt) {
			st.UpdatedAt = latest
		}
		switch r := e.Record.(type) {
		case *model.Review:
			out.Type, out.TypeCode = string(r.Type), r.Type.Code()
			out.Brand, out.Product, out.Rating = r.Brand, r.Product, r.Rating
			st.Brands[r.Brand]++
		case *model.Compare:
			out.Type, out.TypeCode = string(r.Type), r.Type.Code()
			out.Products, out.Winner = r.Products, r.Winner
		case *model.Guide:
			out.Category, out.CategoryCode = string(r.Category), r.Category.Code()
		}
		entries = append(entries, out)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].PubDate.After(entries[j].PubDate) })
	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return Index{Stats: st, Entries: entries}
}
