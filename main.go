// 명령행 진입점:
// - flags 와 settings.yaml(.env, 환경변수 포함)을 읽는다
// - 로그 초기화 후 기본 빌드(피드 파일 작성), -check(콘텐츠 검사), -serve(HTTP) 중 하나를 실행
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cheongso-ryeok/internal/aggregate"
	"cheongso-ryeok/internal/config"
	"cheongso-ryeok/internal/feed"
	"cheongso-ryeok/internal/logx"
	"cheongso-ryeok/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "settings.yaml", "path to settings.yaml (defaults are used when missing)")
		envPath    = flag.String("env", ".env", "dotenv file with SITE_URL/CONTENT_DIR/LOG_LEVEL overrides")
		contentDir = flag.String("content", "", "content root containing review/compare/guide (overrides CONTENT_DIR)")
		outPath    = flag.String("out", "", "rss output path (overrides FEED.rss)")
		exportPath = flag.String("export", "", "index.json output path (overrides EXPORT)")
		check      = flag.Bool("check", false, "validate content, print a report and exit")
		serve      = flag.Bool("serve", false, "serve feeds over HTTP")
		addr       = flag.String("addr", "", "listen address for -serve (overrides SERVER.addr)")
	)
	flag.Parse()

	// 1) 설정: 파일 → .env/환경변수 → flags
	cfg, err := config.Load(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.LoadEnv(*envPath); err != nil {
		log.Fatalf("load env: %v", err)
	}
	if *contentDir != "" {
		cfg.ContentDir = *contentDir
	}
	if *outPath != "" {
		cfg.Feed.RSS = *outPath
	}
	if *exportPath != "" {
		cfg.Export = *exportPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// 2) 로그: 레벨/형식/언어/색상
	logx.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogLocale, cfg.LogColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	run := aggregate.New(cfg)

	switch {
	case *check:
		// 3) 검사: 표는 stdout, 실패 원인은 로그로
		if err := run.Check(ctx, os.Stdout); err != nil {
			logx.Errorf("콘텐츠 검사 실패: %v", err)
			os.Exit(1)
		}
	case *serve:
		// 4) 서버: 요청마다 콘텐츠를 다시 읽는다
		srv := server.New(run.Loader(), cfg.Site, feed.OptionsFrom(cfg.Feed))
		if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
			logx.Errorf("서버 실행 실패: %v", err)
			os.Exit(1)
		}
	default:
		// 5) 빌드: 피드 파일 작성
		logx.Infof("빌드 시작: 콘텐츠=%s 사이트=%s", cfg.ContentDir, cfg.Site.URL)
		res, err := run.Run(ctx)
		if err != nil {
			logx.Errorf("빌드 실패: %v", err)
			os.Exit(1)
		}
		logx.Infof("빌드 완료: 항목 %d개, 파일 %d개", res.Items, len(res.Written))
	}
}
