// 패키지 aggregate 는 빌드 흐름을 묶는다:
// - 세 컬렉션을 한 번 읽어 피드와 index.json 의 공통 입력으로 쓴다
// - 설정된 형식(RSS/Atom/JSON Feed)마다 직렬화 후 gofeed 로 검증
// - 피드와 index.json 을 모두 만든 뒤 임시 파일을 거쳐 한꺼번에 교체
package aggregate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cheongso-ryeok/internal/config"
	"cheongso-ryeok/internal/content"
	"cheongso-ryeok/internal/export"
	"cheongso-ryeok/internal/feed"
	"cheongso-ryeok/internal/logx"
	"cheongso-ryeok/internal/model"
	"cheongso-ryeok/internal/report"
)

// Runner 는 설정과 로더를 가진 빌드 실행기.
type Runner struct {
	cfg    *config.Config
	loader *content.Loader
}

// New 는 cfg.ContentDir 을 읽는 Runner 를 만든다.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, loader: content.NewLoader(cfg.ContentDir)}
}

// Loader 는 서버 모드에서 요청마다 다시 읽을 때 쓰는 소스.
func (r *Runner) Loader() *content.Loader { return r.loader }

// Result 는 한 번의 빌드에서 쓴 파일과 항목 수.
type Result struct {
	Items   int
	Written []string
}

// Run 은 컬렉션을 읽어 피드 파일들을 쓰고, 설정되어 있으면 index.json 도 쓴다.
// 모든 문서를 만들고 임시 파일로 옮겨 둔 뒤에야 한꺼번에 교체한다.
// 로드, 검증, 직렬화, 임시 쓰기 중 하나라도 실패하면 기존 파일은 그대로다.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cols, err := r.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	f, err := feed.New(cols, r.cfg.Site, feed.OptionsFrom(r.cfg.Feed))
	if err != nil {
		return nil, err
	}
	logx.Infof("피드 항목 %d개 (리뷰=%d 비교=%d 가이드=%d)",
		len(f.Items), len(cols[model.KindReview]), len(cols[model.KindCompare]), len(cols[model.KindGuide]))

	targets := []struct {
		format feed.Format
		path   string
	}{
		{feed.FormatRSS, r.cfg.Feed.RSS},
		{feed.FormatAtom, r.cfg.Feed.Atom},
		{feed.FormatJSON, r.cfg.Feed.JSON},
	}
	var outs []output
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		doc, err := f.Encode(t.format)
		if err != nil {
			return nil, err
		}
		if err := feed.Verify(doc, len(f.Items)); err != nil {
			return nil, fmt.Errorf("verify %s: %w", t.format, err)
		}
		outs = append(outs, output{path: t.path, data: doc})
	}
	if r.cfg.Export != "" {
		doc, err := export.Encode(cols, r.cfg.Feed.MaxItems)
		if err != nil {
			return nil, err
		}
		outs = append(outs, output{path: r.cfg.Export, data: doc})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := commit(outs); err != nil {
		return nil, err
	}
	res := &Result{Items: len(f.Items)}
	for _, o := range outs {
		logx.Infof("작성 완료: %s (%d bytes)", o.path, len(o.data))
		res.Written = append(res.Written, o.path)
	}
	return res, nil
}

// Check 는 컬렉션을 검사해 표와 경고를 w 에 쓴다.
// 로드에 실패하면 위반 목록을 쓰고 그 오류를 돌려준다.
func (r *Runner) Check(ctx context.Context, w io.Writer) error {
	cols, err := r.loader.LoadAll(ctx)
	if err != nil {
		if werr := report.WriteError(w, err); werr != nil {
			logx.Warnf("검사 결과 출력 실패: %v", werr)
		}
		return err
	}
	rep := report.Build(cols, r.cfg)
	for _, wn := range rep.Warnings {
		logx.Warnf("%s", wn)
	}
	return rep.Write(w)
}

// output 은 교체할 파일 하나와 그 내용.
type output struct {
	path string
	data []byte
	tmp  string
}

// commit 은 outs 를 전부 임시 파일로 쓴 다음 rename 한다.
// 대상이 디렉터리이거나 임시 쓰기에 실패하면 아무것도 교체하지 않는다.
func commit(outs []output) error {
	for _, o := range outs {
		if fi, err := os.Stat(o.path); err == nil && fi.IsDir() {
			return fmt.Errorf("output %s is a directory", o.path)
		}
	}
	defer func() {
		for _, o := range outs {
			if o.tmp != "" {
				os.Remove(o.tmp)
			}
		}
	}()
	for i := range outs {
		tmp, err := stage(outs[i].path, outs[i].data)
		if err != nil {
			return err
		}
		outs[i].tmp = tmp
	}
	for i, o := range outs {
		if err := os.Rename(o.tmp, o.path); err != nil {
			return fmt.Errorf("rename %s: %w", o.path, err)
		}
		outs[i].tmp = ""
	}
	return nil
}

// stage 는 path 와 같은 디렉터리에 임시 파일을 쓰고 그 이름을 돌려준다.
func stage(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	return tmp.Name(), nil
}
