// 패키지 server 는 -serve 모드의 HTTP 엔드포인트:
// - /rss.xml, /atom.xml, /feed.json 은 요청마다 콘텐츠를 새로 읽어 피드를 만든다
// - 실패하면 일부만 쓴 본문 없이 500 을 돌려준다
// - /healthz 는 프로세스 상태만 확인한다
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cheongso-ryeok/internal/config"
	"cheongso-ryeok/internal/feed"
	"cheongso-ryeok/internal/logx"
)

// Server 는 피드 엔드포인트를 가진 gin 엔진.
type Server struct {
	src    feed.Source
	site   config.Site
	opts   feed.Options
	engine *gin.Engine
}

// New 는 라우트를 등록한 Server 를 만든다.
func New(src feed.Source, site config.Site, opts feed.Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{src: src, site: site, opts: opts, engine: gin.New()}
	s.engine.Use(requestLog(), gin.Recovery())
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/rss.xml", s.serveFeed(feed.FormatRSS))
	s.engine.GET("/atom.xml", s.serveFeed(feed.FormatAtom))
	s.engine.GET("/feed.json", s.serveFeed(feed.FormatJSON))
	return s
}

// Handler 는 테스트나 다른 서버에 붙이기 위한 http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run 은 ctx 가 끝날 때까지 addr 에서 요청을 받는다.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logx.Infof("피드 서버 시작: %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logx.Infof("피드 서버 종료")
		return nil
	}
}

func (s *Server) serveFeed(ft feed.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := feed.Aggregate(c.Request.Context(), s.src, s.site, s.opts)
		if err != nil {
			logx.Errorf("피드 생성 실패: %s %v", c.Request.URL.Path, err)
			c.String(http.StatusInternalServerError, "feed unavailable\n")
			return
		}
		doc, err := f.Encode(ft)
		if err != nil {
			logx.Errorf("피드 직렬화 실패: %s %v", ft, err)
			c.String(http.StatusInternalServerError, "feed unavailable\n")
			return
		}
		c.Data(http.StatusOK, ft.ContentType(), doc)
	}
}

// requestLog 는 요청 한 건을 logx 로 남긴다.
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		msg := "%s %s %d %s"
		args := []any{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond)}
		if status >= http.StatusInternalServerError {
			logx.Warnf(msg, args...)
			return
		}
		logx.Debugf(msg, args...)
	}
}
