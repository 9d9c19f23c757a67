// 패키지 config 는 settings.yaml 을 읽어 사이트 설정을 만든다:
// - Default() 는 사이트 기본 상수(이름/설명/URL/브랜드 목록)를 담는다
// - Load 는 YAML 을 기본값 위에 덮어쓰고 Validate 로 검사한다
// - .env 와 환경변수(SITE_URL, CONTENT_DIR, LOG_LEVEL)가 파일보다 우선한다
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Site       Site     `yaml:"SITE"`
	Brands     []string `yaml:"BRANDS"`
	ContentDir string   `yaml:"CONTENT_DIR"`
	Feed       Feed     `yaml:"FEED"`
	Export     string   `yaml:"EXPORT"` // index.json 경로, 비우면 생략
	Server     Server   `yaml:"SERVER"`
	LogLevel   string   `yaml:"LOG_LEVEL"`
	LogFormat  string   `yaml:"LOG_FORMAT"` // pretty|json|text
	LogLocale  string   `yaml:"LOG_LOCALE"` // ko-KR|en
	LogColor   string   `yaml:"LOG_COLOR"`  // auto|always|never
}

// Site 는 피드 채널과 링크 생성에 쓰는 사이트 메타데이터.
type Site struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Locale      string `yaml:"locale"`
	Author      string `yaml:"author"`
	AuthorEmail string `yaml:"author_email"`
}

type Feed struct {
	MaxItems    int    `yaml:"max_items"` // 0 이면 제한 없음
	FullContent bool   `yaml:"full_content"`
	RSS         string `yaml:"rss"`
	Atom        string `yaml:"atom"`
	JSON        string `yaml:"json"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Default 는 사이트 기본값.
func Default() *Config {
	return &Config{
		Site: Site{
			Name:        "청소력",
			Title:       "청소력 - 청소기 리뷰 전문 블로그",
			Description: "무선청소기, 로봇청소기, 물걸레청소기 리뷰 및 비교 분석",
			URL:         "https://cheongso-ryeok.pages.dev",
			Locale:      "ko_KR",
			Author:      "청소력",
		},
		Brands: []string{
			"다이슨", "LG", "삼성", "샤오미", "로보락",
			"에코백스", "드리미", "일렉트로룩스", "테팔", "발뮤다",
		},
		ContentDir: "src/content",
		Feed:       Feed{RSS: "dist/rss.xml"},
		Server:     Server{Addr: ":4321"},
	}
}

// Load 는 path 의 YAML 을 기본값 위에 읽어 들인다. 파일이 없으면 오류.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadEnv 는 .env 파일(있으면)을 환경변수로 올린 뒤 ApplyEnv 를 적용한다.
func (c *Config) LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	c.ApplyEnv(os.LookupEnv)
	return c.Validate()
}

// ApplyEnv 는 환경변수 값으로 설정을 덮어쓴다.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("SITE_URL"); ok && v != "" {
		c.Site.URL = v
	}
	if v, ok := lookup("CONTENT_DIR"); ok && v != "" {
		c.ContentDir = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate 는 값을 검사하고 빈 항목에 기본값을 채운다.
func (c *Config) Validate() error {
	if c.Feed.MaxItems < 0 {
		return errors.New("FEED.max_items must be >= 0")
	}
	c.Site.URL = strings.TrimRight(strings.TrimSpace(c.Site.URL), "/")
	u, err := url.Parse(c.Site.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SITE.url must be an absolute http(s) URL: %q", c.Site.URL)
	}
	if strings.TrimSpace(c.Site.Title) == "" {
		return errors.New("SITE.title is required")
	}
	if c.ContentDir == "" {
		c.ContentDir = "src/content"
	}
	if c.Site.Locale == "" {
		c.Site.Locale = "ko_KR"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":4321"
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogLocale == "" {
		c.LogLocale = "ko-KR"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}

// Language 는 locale(ko_KR)을 RSS language 형식(ko-kr)으로 바꾼다.
func (s Site) Language() string {
	return strings.ToLower(strings.ReplaceAll(s.Locale, "_", "-"))
}

// HasBrand 는 brand 가 BRANDS 목록에 있는지 확인한다.
func (c *Config) HasBrand(brand string) bool {
	for _, b := range c.Brands {
		if strings.EqualFold(b, strings.TrimSpace(brand)) {
			return true
		}
	}
	return false
}
