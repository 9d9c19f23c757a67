// 패키지 logx 는 표준 slog 위에 얇게 얹은 로거다:
// - 레벨/형식(pretty|json|text)/언어(ko-KR|en)/색상 설정
// - pretty 형식은 [정보] [경고] 같은 사람이 읽기 좋은 한 줄 출력
// - Debugf/Infof/Warnf/Errorf 로만 쓰고 내부 구현은 숨긴다
package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// levelSilent 는 모든 출력을 끈다.
const levelSilent slog.Level = 100

// Init 은 stderr 로 쓰는 전역 로거를 설정한다. 표준출력은 보고서/피드 출력용으로 남겨 둔다.
func Init(level, format, locale, colorMode string) {
	InitWriter(os.Stderr, level, format, locale, colorMode)
}

// InitWriter 는 출력 대상을 지정해 전역 로거를 설정한다.
func InitWriter(w io.Writer, level, format, locale, colorMode string) {
	lv := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		h = NewPrettyHandler(w, lv, locale, colorMode)
	}
	slog.SetDefault(slog.New(h))
}

// ParseLevel 은 문자열 레벨을 slog.Level 로 바꾼다. 알 수 없으면 info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "silent", "off":
		return levelSilent
	default:
		return slog.LevelInfo
	}
}

func Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { slog.Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }

// PrettyHandler 는 "시각 [레벨] 메시지 k=v" 한 줄 형식의 slog.Handler.
type PrettyHandler struct {
	w      io.Writer
	level  slog.Level
	labels map[slog.Level]string
	color  bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	group  string
}

// NewPrettyHandler 는 locale 에 맞는 레벨 라벨로 PrettyHandler 를 만든다.
func NewPrettyHandler(w io.Writer, level slog.Level, locale, colorMode string) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	return &PrettyHandler{
		w:      w,
		level:  level,
		labels: labelsFor(locale),
		color:  shouldColor(w, colorMode),
		mu:     &sync.Mutex{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.level < levelSilent && l >= h.level
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format("2006-01-02 15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(h.label(r.Level))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.qualify(a))
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs 는 현재 그룹 이름을 붙여 둔 채로 속성을 보관한다.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		cp.attrs = append(cp.attrs, h.qualify(a))
	}
	return &cp
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	cp := *h
	if cp.group == "" {
		cp.group = name
	} else {
		cp.group += "." + name
	}
	return &cp
}

func (h *PrettyHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

func writeAttr(buf *bytes.Buffer, a slog.Attr) {
	buf.WriteByte(' ')
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(a.Value.String())
}

func (h *PrettyHandler) label(l slog.Level) string {
	s, ok := h.labels[l]
	if !ok {
		s = fmt.Sprintf("[L%d]", l)
	}
	if h.color {
		s = colorize(s, l)
	}
	return s
}

var (
	koLabels = map[slog.Level]string{
		slog.LevelDebug: "[디버그]",
		slog.LevelInfo:  "[정보]",
		slog.LevelWarn:  "[경고]",
		slog.LevelError: "[오류]",
	}
	enLabels = map[slog.Level]string{
		slog.LevelDebug: "[DEBUG]",
		slog.LevelInfo:  "[INFO]",
		slog.LevelWarn:  "[WARN]",
		slog.LevelError: "[ERROR]",
	}
)

// labelsFor 는 ko 로 시작하는 locale(기본값 포함)이면 한국어 라벨을 쓴다.
func labelsFor(locale string) map[slog.Level]string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if l == "" || strings.HasPrefix(l, "ko") {
		return koLabels
	}
	return enLabels
}

// shouldColor 는 LOG_COLOR 값과 NO_COLOR 환경변수를 따른다.
func shouldColor(w io.Writer, mode string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "auto", "":
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		fi, err := f.Stat()
		return err == nil && fi.Mode()&os.ModeCharDevice != 0
	default:
		return false
	}
}

func colorize(s string, l slog.Level) string {
	code := "0"
	switch l {
	case slog.LevelDebug:
		code = "90"
	case slog.LevelInfo:
		code = "36"
	case slog.LevelWarn:
		code = "33"
	case slog.LevelError:
		code = "31"
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
