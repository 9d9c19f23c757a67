package aggregate_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheongso-ryeok/internal/aggregate"
	"cheongso-ryeok/internal/config"
	"cheongso-ryeok/internal/content"
	"cheongso-ryeok/internal/schema"
)

func write(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func site(t *testing.T) (*config.Config, string) {
	root := t.TempDir()
	write(t, root, "content/review/v15.md", "---\ntitle: V15 리뷰\ndescription: d\nproduct: V15\nbrand: 다이슨\ntype: 무선청소기\nrating: 5\nprice: 1원\npubDate: 2024-01-01\n---\n본문\n")
	write(t, root, "content/compare/a-vs-b.md", "---\ntitle: A vs B\ndescription: d\nproducts: [A, B]\nwinner: A\ntype: 로봇청소기\npubDate: 2024-03-01\n---\n")
	write(t, root, "content/guide/buying.md", "---\ntitle: 가이드\ndescription: d\ncategory: 구매가이드\npubDate: 2024-02-01\n---\n")

	cfg := config.Default()
	cfg.ContentDir = filepath.Join(root, "content")
	cfg.Feed.RSS = filepath.Join(root, "dist", "rss.xml")
	cfg.Feed.Atom = filepath.Join(root, "dist", "atom.xml")
	cfg.Feed.JSON = filepath.Join(root, "dist", "feed.json")
	cfg.Export = filepath.Join(root, "dist", "index.json")
	require.NoError(t, cfg.Validate())
	return cfg, root
}

func TestRun_WritesVerifiedFeeds(t *testing.T) {
	cfg, _ := site(t)
	res, err := aggregate.New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Items)
	assert.Equal(t, []string{cfg.Feed.RSS, cfg.Feed.Atom, cfg.Feed.JSON, cfg.Export}, res.Written)

	b, err := os.ReadFile(cfg.Feed.RSS)
	require.NoError(t, err)
	parsed, err := gofeed.NewParser().ParseString(string(b))
	require.NoError(t, err)
	require.Len(t, parsed.Items, 3)
	assert.Equal(t, "A vs B", parsed.Items[0].Title)
	assert.Equal(t, "V15 리뷰", parsed.Items[2].Title)

	entries, err := os.ReadDir(filepath.Dir(cfg.Feed.RSS))
	require.NoError(t, err)
	assert.Len(t, entries, 4, "temp files must not be left behind")
}

func TestRun_SchemaViolationWritesNothing(t *testing.T) {
	cfg, root := site(t)
	write(t, root, "content/review/bad.md", "---\ntitle: t\ndescription: d\nproduct: p\nbrand: b\ntype: 무선청소기\nrating: 0\nprice: p\npubDate: 2024-01-01\n---\n")

	res, err := aggregate.New(cfg).Run(context.Background())
	assert.Nil(t, res)
	var cle *content.CollectionLoadError
	require.ErrorAs(t, err, &cle)
	var v *schema.SchemaViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "rating", v.Field)
	_, statErr := os.Stat(filepath.Dir(cfg.Feed.RSS))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_KeepsPreviousFeedOnFailure(t *testing.T) {
	cfg, root := site(t)
	_, err := aggregate.New(cfg).Run(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(cfg.Feed.RSS)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "content", "guide")))
	_, err = aggregate.New(cfg).Run(context.Background())
	require.Error(t, err)
	after, err := os.ReadFile(cfg.Feed.RSS)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_ExportFailureKeepsPreviousFeeds(t *testing.T) {
	cfg, root := site(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Feed.RSS), 0o755))
	require.NoError(t, os.WriteFile(cfg.Feed.RSS, []byte("PREVIOUS"), 0o644))
	cfg.Export = filepath.Join(root, "dist", "index")
	require.NoError(t, os.MkdirAll(cfg.Export, 0o755))

	res, err := aggregate.New(cfg).Run(context.Background())
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	b, err := os.ReadFile(cfg.Feed.RSS)
	require.NoError(t, err)
	assert.Equal(t, "PREVIOUS", string(b))
	_, err = os.Stat(cfg.Feed.Atom)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(filepath.Dir(cfg.Feed.RSS))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "only rss.xml and the index directory remain")
}

func TestRun_WritesIndexWithCodes(t *testing.T) {
	cfg, _ := site(t)
	_, err := aggregate.New(cfg).Run(context.Background())
	require.NoError(t, err)
	b, err := os.ReadFile(cfg.Export)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"typeCode": "robot"`)
	assert.Contains(t, string(b), `"categoryCode": "buying-guide"`)
}

func TestRun_RSSOnly(t *testing.T) {
	cfg, _ := site(t)
	cfg.Feed.Atom, cfg.Feed.JSON, cfg.Export = "", "", ""
	res, err := aggregate.New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.Feed.RSS}, res.Written)
}

func TestCheck(t *testing.T) {
	cfg, root := site(t)
	var out bytes.Buffer
	require.NoError(t, aggregate.New(cfg).Check(context.Background(), &out))
	assert.Contains(t, out.String(), "3 entries, 0 warnings")

	write(t, root, "content/review/bad.md", "---\ntitle: t\n---\n")
	out.Reset()
	err := aggregate.New(cfg).Check(context.Background(), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), `review/bad: field "description"`)
}

func TestCheck_ListsEveryInvalidFile(t *testing.T) {
	cfg, root := site(t)
	write(t, root, "content/guide/bad1.md", "---\ntitle: t\ndescription: d\ncategory: 뉴스\npubDate: 2024-01-01\n---\n")
	write(t, root, "content/guide/bad2.md", "---\ntitle: t\ndescription: d\ncategory: 기타\n---\n")
	write(t, root, "content/compare/bad.md", "---\ntitle: t\n---\n")

	var out bytes.Buffer
	err := aggregate.New(cfg).Check(context.Background(), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), `guide/bad1: field "category"`)
	assert.Contains(t, out.String(), `guide/bad2: field "pubDate"`)
	assert.Contains(t, out.String(), `compare/bad: field "products"`)
}
