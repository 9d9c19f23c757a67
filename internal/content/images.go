package content

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"cheongso-ryeok/internal/model"
)

// fileImages 는 항목 파일 위치를 기준으로 로컬 이미지를 해석한다.
// 원격 URL 과 절대 경로는 받지 않는다.
type fileImages struct {
	root string // 콘텐츠 루트
	dir  string // 항목 파일이 있는 디렉터리
}

func (fi fileImages) ResolveImage(ref string) (*model.Image, error) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(ref, "//") {
		return nil, errors.New("remote images are not supported")
	}
	if strings.HasPrefix(ref, "/") {
		return nil, errors.New("absolute paths are not supported, use a path relative to the entry")
	}
	full := filepath.Join(fi.dir, filepath.FromSlash(ref))
	rel, err := filepath.Rel(fi.root, full)
	if err != nil {
		rel = full
	}
	img := &model.Image{Src: filepath.ToSlash(rel), Path: full}

	ext := strings.ToLower(path.Ext(ref))
	if ext == ".svg" {
		if _, err := os.Stat(full); err != nil {
			return nil, fmt.Errorf("stat %s: %w", ref, err)
		}
		img.Format = "svg"
		return img, nil
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	img.Width, img.Height, img.Format = cfg.Width, cfg.Height, format
	return img, nil
}
