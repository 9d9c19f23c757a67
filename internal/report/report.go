// 패키지 report 는 -check 모드 출력을 만든다:
// - 항목별 표(종류, 슬러그, 제목, 발행일, 플래그), 한글 폭에 맞춰 정렬
// - 스키마로는 잡히지 않는 편집 경고(미등록 브랜드, 목록에 없는 winner)
// - 로드 실패 시 위반 목록
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"cheongso-ryeok/internal/config"
	"cheongso-ryeok/internal/content"
	"cheongso-ryeok/internal/model"
	"cheongso-ryeok/internal/schema"
)

const titleWidth = 40

// Row 는 표의 한 줄.
type Row struct {
	Kind    model.Kind
	Slug    string
	Title   string
	PubDate string
	Flags   []string
}

// Warning 은 실패로 보지는 않지만 확인이 필요한 항목.
type Warning struct {
	Kind    model.Kind
	Slug    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s/%s: %s", w.Kind, w.Slug, w.Message)
}

// Report 는 검사 결과 전체.
type Report struct {
	Rows     []Row
	Warnings []Warning
}

// Build 는 로드된 컬렉션을 종류 순서대로 표로 만든다.
func Build(cols model.Collections, cfg *config.Config) *Report {
	r := &Report{}
	for _, e := range cols.All() {
		meta := e.Record.Meta()
		row := Row{Kind: e.Kind, Slug: e.ID, Title: meta.Title, PubDate: meta.PubDate.Format("2006-01-02")}
		if meta.Draft {
			row.Flags = append(row.Flags, "draft")
		}
		if !meta.UpdatedDate.IsZero() {
			row.Flags = append(row.Flags, "updated")
		}
		if meta.HeroImage != nil {
			row.Flags = append(row.Flags, "hero")
		}
		r.Rows = append(r.Rows, row)

		switch rec := e.Record.(type) {
		case *model.Review:
			if len(cfg.Brands) > 0 && !cfg.HasBrand(rec.Brand) {
				r.warn(e, fmt.Sprintf("brand %q is not in BRANDS", rec.Brand))
			}
		case *model.Compare:
			if rec.Winner != "" && !contains(rec.Products, rec.Winner) {
				r.warn(e, fmt.Sprintf("winner %q is not one of products %v", rec.Winner, rec.Products))
			}
		}
	}
	return r
}

func (r *Report) warn(e model.Entry, msg string) {
	r.Warnings = append(r.Warnings, Warning{Kind: e.Kind, Slug: e.ID, Message: msg})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) == strings.TrimSpace(s) {
			return true
		}
	}
	return false
}

// Write 는 표와 경고를 w 에 쓴다.
func (r *Report) Write(w io.Writer) error {
	table := [][]string{{"KIND", "SLUG", "TITLE", "PUBDATE", "FLAGS"}}
	for _, row := range r.Rows {
		table = append(table, []string{
			string(row.Kind),
			row.Slug,
			runewidth.Truncate(row.Title, titleWidth, "…"),
			row.PubDate,
			strings.Join(row.Flags, ","),
		})
	}
	var sb strings.Builder
	for _, line := range align(table) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "\n%d entries, %d warnings\n", len(r.Rows), len(r.Warnings))
	for _, wn := range r.Warnings {
		sb.WriteString("warning: ")
		sb.WriteString(wn.String())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// align 은 표시 폭 기준으로 열을 맞춘다. 마지막 열은 채우지 않는다.
func align(table [][]string) []string {
	if len(table) == 0 {
		return nil
	}
	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	lines := make([]string, 0, len(table))
	for _, row := range table {
		var sb strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

// WriteError 는 로드 실패를 사람이 읽을 수 있게 쓴다.
// 여러 컬렉션이 실패했으면 컬렉션마다, 스키마 위반이면 위반마다 한 줄씩 쓴다.
func WriteError(w io.Writer, err error) error {
	var sb strings.Builder
	for _, e := range flatten(err) {
		var cle *content.CollectionLoadError
		if errors.As(e, &cle) {
			fmt.Fprintf(&sb, "collection %s (%s) failed to load\n", cle.Kind, cle.Dir)
			e = cle.Err
		}
		var vs schema.Violations
		if errors.As(e, &vs) {
			for _, v := range vs {
				fmt.Fprintf(&sb, "  - %s\n", v.Error())
			}
			continue
		}
		fmt.Fprintf(&sb, "  - %v\n", e)
	}
	_, werr := io.WriteString(w, sb.String())
	return werr
}

// flatten 은 errors.Join 으로 묶인 오류를 펼친다.
func flatten(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
