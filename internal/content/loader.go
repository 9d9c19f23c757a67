// 패키지 content 는 콘텐츠 디렉터리에서 컬렉션을 읽어 검증한다:
// - <root>/<kind>/**/*.md(x) 를 순회하고 frontmatter 를 분리
// - 파일 경로에서 슬러그(항목 ID)를 만들고 schema 로 검증
// - 세 컬렉션을 동시에 읽되 결과 순서는 항상 같게 유지
// - 한 번의 로드에서 모든 파일의 스키마 위반을 모아서 보고
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cheongso-ryeok/internal/logx"
	"cheongso-ryeok/internal/model"
	"cheongso-ryeok/internal/schema"
)

var extensions = map[string]bool{".md": true, ".mdx": true, ".markdown": true}

// Loader 는 Root 아래의 컬렉션 디렉터리를 읽는다. 상태를 갖지 않으며
// 호출할 때마다 파일을 새로 읽는다.
type Loader struct {
	Root string
}

// NewLoader 는 콘텐츠 루트(예: src/content)를 받아 Loader 를 만든다.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Load 는 한 컬렉션의 모든 항목을 슬러그 순으로 돌려준다.
// 실패하면 항상 *CollectionLoadError 를 돌려준다.
func (l *Loader) Load(ctx context.Context, kind model.Kind) ([]model.Entry, error) {
	dir := filepath.Join(l.Root, string(kind))
	if !kind.Valid() {
		return nil, &CollectionLoadError{Kind: kind, Dir: dir, Err: ErrUnknownKind}
	}
	fail := func(err error) ([]model.Entry, error) {
		return nil, &CollectionLoadError{Kind: kind, Dir: dir, Err: err}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fail(err)
	}
	if !info.IsDir() {
		return fail(fmt.Errorf("%s is not a directory", dir))
	}

	var paths []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if p != dir && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !extensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return fail(err)
	}

	// 스키마 위반은 항목마다 모아서 한 번에 돌려준다. 읽기 오류는 바로 실패.
	entries := make([]model.Entry, 0, len(paths))
	seen := make(map[string]string, len(paths))
	var invalid schema.Violations
	for _, p := range paths {
		e, err := l.loadEntry(kind, dir, p)
		var vs schema.Violations
		if errors.As(err, &vs) {
			invalid = append(invalid, vs...)
			continue
		}
		if err != nil {
			return fail(err)
		}
		if prev, ok := seen[e.ID]; ok {
			return fail(fmt.Errorf("duplicate entry id %q: %s and %s", e.ID, prev, p))
		}
		seen[e.ID] = p
		entries = append(entries, e)
	}
	if len(invalid) > 0 {
		return fail(invalid)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	logx.Debugf("컬렉션 로드 완료: %s %d개", kind, len(entries))
	return entries, nil
}

// loadEntry 는 파일 하나를 읽고 검증한다.
func (l *Loader) loadEntry(kind model.Kind, dir, p string) (model.Entry, error) {
	src, err := os.ReadFile(p)
	if err != nil {
		return model.Entry{}, err
	}
	id := Slug(dir, p)
	raw, body, err := SplitFrontmatter(src)
	if err != nil {
		return model.Entry{}, schema.Violations{{
			Kind: kind, Entry: id, Field: "frontmatter", Constraint: "valid YAML frontmatter (" + err.Error() + ")",
		}}
	}
	if s, ok := raw["slug"].(string); ok && strings.TrimSpace(s) != "" {
		id = strings.Trim(strings.TrimSpace(s), "/")
	}
	images := fileImages{root: l.Root, dir: filepath.Dir(p)}
	rec, err := schema.Validate(kind, raw, images)
	if err != nil {
		if vs, ok := err.(schema.Violations); ok {
			return model.Entry{}, vs.WithEntry(id)
		}
		return model.Entry{}, err
	}
	return model.Entry{Kind: kind, ID: id, Path: p, Body: body, Record: rec}, nil
}

// LoadAll 은 세 컬렉션을 동시에 읽는다. 하나라도 실패하면 전체가 실패하며,
// 실패한 컬렉션의 *CollectionLoadError 를 종류 순서대로 errors.Join 해서 돌려준다.
func (l *Loader) LoadAll(ctx context.Context) (model.Collections, error) {
	results := make([][]model.Entry, len(model.Kinds))
	errs := make([]error, len(model.Kinds))
	var g errgroup.Group
	for i, kind := range model.Kinds {
		i, kind := i, kind
		g.Go(func() error {
			results[i], errs[i] = l.Load(ctx, kind)
			return nil
		})
	}
	_ = g.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	out := make(model.Collections, len(model.Kinds))
	for i, kind := range model.Kinds {
		out[kind] = results[i]
	}
	return out, nil
}

// Slug 는 컬렉션 디렉터리 기준 상대 경로에서 확장자를 떼고
// 소문자/하이픈으로 정규화한 항목 ID 를 만든다.
func Slug(dir, p string) string {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		rel = filepath.Base(p)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	segs := strings.Split(filepath.ToSlash(rel), "/")
	for i, s := range segs {
		s = strings.ToLower(strings.TrimSpace(s))
		segs[i] = strings.Join(strings.Fields(s), "-")
	}
	return strings.Join(segs, "/")
}
