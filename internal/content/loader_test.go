package content_test

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheongso-ryeok/internal/content"
	"cheongso-ryeok/internal/model"
	"cheongso-ryeok/internal/schema"
)

const reviewMD = `---
title: 다이슨 V15 디텍트 리뷰
description: 레이저로 먼지를 보여주는 무선청소기
product: V15 Detect
brand: 다이슨
type: 무선청소기
rating: 4.5
price: "1,090,000원"
pros:
  - 강력한 흡입력
cons: []
pubDate: 2024-01-15
heroImage: ./v15.png
---

## 총평

좋습니다.
`

const compareMD = `---
title: 로보락 S8 vs 에코백스 X2
description: 플래그십 로봇청소기 비교
products: ["로보락 S8", "에코백스 X2"]
type: 로봇청소기
pubDate: "2024-03-01"
---
본문
`

const guideMD = `---
title: 무선청소기 고르는 법
description: 흡입력과 배터리
category: 구매가이드
pubDate: 2024-02-01
draft: true
---
`

func write(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func writePNG(t *testing.T, root, rel string, w, h int) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func fixture(t *testing.T) string {
	root := t.TempDir()
	write(t, root, "review/dyson-v15.md", reviewMD)
	writePNG(t, root, "review/v15.png", 32, 16)
	write(t, root, "compare/Roborock vs Ecovacs.mdx", compareMD)
	write(t, root, "guide/2024/buying.md", guideMD)
	write(t, root, "guide/_drafts/ignored.md", "---\ntitle: x\n---\n")
	write(t, root, "guide/notes.txt", "not content")
	return root
}

func TestLoad_Review(t *testing.T) {
	root := fixture(t)
	entries, err := content.NewLoader(root).Load(context.Background(), model.KindReview)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "dyson-v15", e.ID)
	assert.Equal(t, "/review/dyson-v15/", e.Link())
	assert.Contains(t, string(e.Body), "## 총평")

	rv, ok := e.Record.(*model.Review)
	require.True(t, ok)
	assert.Equal(t, 4.5, rv.Rating)
	assert.Equal(t, "1,090,000원", rv.Price)
	assert.Equal(t, []string{"강력한 흡입력"}, rv.Pros)
	assert.Equal(t, 2024, rv.PubDate.Year())
	require.NotNil(t, rv.HeroImage)
	assert.Equal(t, "review/v15.png", rv.HeroImage.Src)
	assert.Equal(t, 32, rv.HeroImage.Width)
	assert.Equal(t, 16, rv.HeroImage.Height)
	assert.Equal(t, "png", rv.HeroImage.Format)
}

func TestLoad_SlugsAndIgnoredFiles(t *testing.T) {
	root := fixture(t)
	l := content.NewLoader(root)

	cmp, err := l.Load(context.Background(), model.KindCompare)
	require.NoError(t, err)
	require.Len(t, cmp, 1)
	assert.Equal(t, "roborock-vs-ecovacs", cmp[0].ID)

	guides, err := l.Load(context.Background(), model.KindGuide)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "2024/buying", guides[0].ID)
	assert.True(t, guides[0].Record.Meta().Draft)
}

func TestLoad_SlugOverride(t *testing.T) {
	root := t.TempDir()
	write(t, root, "compare/x.md", "---\nslug: custom/path\ntitle: t\ndescription: d\nproducts: [A]\ntype: 물걸레청소기\npubDate: 2024-01-01\n---\n")
	entries, err := content.NewLoader(root).Load(context.Background(), model.KindCompare)
	require.NoError(t, err)
	assert.Equal(t, "custom/path", entries[0].ID)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := content.NewLoader(t.TempDir()).Load(context.Background(), model.KindGuide)
	var cle *content.CollectionLoadError
	require.ErrorAs(t, err, &cle)
	assert.Equal(t, model.KindGuide, cle.Kind)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_UnknownKind(t *testing.T) {
	_, err := content.NewLoader(t.TempDir()).Load(context.Background(), model.Kind("news"))
	assert.ErrorIs(t, err, content.ErrUnknownKind)
}

func TestLoad_SchemaViolation(t *testing.T) {
	root := t.TempDir()
	write(t, root, "review/bad.md", "---\ntitle: t\ndescription: d\nbrand: b\ntype: 무선청소기\nrating: 6\nprice: p\npubDate: 2024-01-01\n---\n")
	_, err := content.NewLoader(root).Load(context.Background(), model.KindReview)

	var cle *content.CollectionLoadError
	require.ErrorAs(t, err, &cle)
	var vs schema.Violations
	require.ErrorAs(t, err, &vs)
	require.NotNil(t, vs.Field("rating"))
	require.NotNil(t, vs.Field("product"))
	assert.Equal(t, "bad", vs.Field("rating").Entry)
}

func TestLoad_MissingImage(t *testing.T) {
	root := t.TempDir()
	write(t, root, "guide/g.md", "---\ntitle: t\ndescription: d\ncategory: 기타\npubDate: 2024-01-01\nheroImage: ./nope.jpg\n---\n")
	_, err := content.NewLoader(root).Load(context.Background(), model.KindGuide)
	var v *schema.SchemaViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "heroImage", v.Field)
}

func TestLoad_RemoteImageRejected(t *testing.T) {
	root := t.TempDir()
	write(t, root, "guide/g.md", "---\ntitle: t\ndescription: d\ncategory: 기타\npubDate: 2024-01-01\nheroImage: https://cdn.example.com/a.jpg\n---\n")
	_, err := content.NewLoader(root).Load(context.Background(), model.KindGuide)
	var v *schema.SchemaViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "heroImage", v.Field)
}

func TestLoad_MalformedFrontmatter(t *testing.T) {
	root := t.TempDir()
	write(t, root, "guide/g.md", "---\ntitle: [unclosed\n---\n")
	_, err := content.NewLoader(root).Load(context.Background(), model.KindGuide)
	var v *schema.SchemaViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "frontmatter", v.Field)
}

func TestLoad_DuplicateIDs(t *testing.T) {
	root := t.TempDir()
	body := "---\ntitle: t\ndescription: d\ncategory: 기타\npubDate: 2024-01-01\n---\n"
	write(t, root, "guide/a.md", body)
	write(t, root, "guide/A.mdx", body)
	_, err := content.NewLoader(root).Load(context.Background(), model.KindGuide)
	var cle *content.CollectionLoadError
	require.ErrorAs(t, err, &cle)
	assert.Contains(t, err.Error(), "duplicate entry id")
}

func TestLoadAll(t *testing.T) {
	root := fixture(t)
	cols, err := content.NewLoader(root).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, cols[model.KindReview], 1)
	assert.Len(t, cols[model.KindCompare], 1)
	assert.Len(t, cols[model.KindGuide], 1)
	all := cols.All()
	require.Len(t, all, 3)
	assert.Equal(t, model.KindReview, all[0].Kind)
	assert.Equal(t, model.KindGuide, all[2].Kind)
}

func TestLoadAll_FailsWhenOneKindFails(t *testing.T) {
	root := fixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "compare")))
	cols, err := content.NewLoader(root).LoadAll(context.Background())
	assert.Nil(t, cols)
	var cle *content.CollectionLoadError
	require.True(t, errors.As(err, &cle))
	assert.Equal(t, model.KindCompare, cle.Kind)
}

func TestSplitFrontmatter(t *testing.T) {
	raw, body, err := content.SplitFrontmatter([]byte("---\r\ntitle: 제목\r\n---\r\n본문\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "제목", raw["title"])
	assert.Equal(t, "본문\n", string(body))

	raw, body, err = content.SplitFrontmatter([]byte("no frontmatter"))
	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, "no frontmatter", string(body))

	raw, body, err = content.SplitFrontmatter([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	assert.Equal(t, "x", raw["title"])
	assert.Empty(t, body)

	raw, _, err = content.SplitFrontmatter([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.Empty(t, raw)

	_, _, err = content.SplitFrontmatter([]byte("---\ntitle: x\n"))
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	dir := filepath.Join("src", "content", "review")
	assert.Equal(t, "dyson-v15", content.Slug(dir, filepath.Join(dir, "Dyson V15.md")))
	assert.Equal(t, "2024/lg-코드제로", content.Slug(dir, filepath.Join(dir, "2024", "LG 코드제로.mdx")))
}

func TestLoad_ReportsEveryInvalidEntry(t *testing.T) {
	root := t.TempDir()
	write(t, root, "guide/ok.md", "---\ntitle: t\ndescription: d\ncategory: 기타\npubDate: 2024-01-01\n---\n")
	write(t, root, "guide/bad1.md", "---\ntitle: t\ndescription: d\ncategory: 뉴스\npubDate: 2024-01-01\n---\n")
	write(t, root, "guide/bad2.md", "---\ntitle: t\ndescription: d\ncategory: 기타\n---\n")

	_, err := content.NewLoader(root).Load(context.Background(), model.KindGuide)
	var vs schema.Violations
	require.ErrorAs(t, err, &vs)
	require.Len(t, vs, 2)
	assert.Equal(t, "bad1", vs[0].Entry)
	assert.Equal(t, "category", vs[0].Field)
	assert.Equal(t, "bad2", vs[1].Entry)
	assert.Equal(t, "pubDate", vs[1].Field)
}

func TestLoadAll_ReportsEveryFailingKind(t *testing.T) {
	root := fixture(t)
	write(t, root, "review/bad.md", "---\ntitle: t\n---\n")
	require.NoError(t, os.RemoveAll(filepath.Join(root, "guide")))

	_, err := content.NewLoader(root).LoadAll(context.Background())
	require.Error(t, err)
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "want joined errors, got %T", err)
	var kinds []model.Kind
	for _, e := range joined.Unwrap() {
		var cle *content.CollectionLoadError
		require.ErrorAs(t, e, &cle)
		kinds = append(kinds, cle.Kind)
	}
	assert.Equal(t, []model.Kind{model.KindReview, model.KindGuide}, kinds)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
