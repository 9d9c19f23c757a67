package schema

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 아래 필드 타입은 YAML 노드 태그를 보고 선언된 타입만 받는다.
// yaml.v3 기본 동작(숫자를 문자열로, "yes" 를 bool 로 바꾸기)은 쓰지 않는다.

// text 는 문자열 스칼라. 앞뒤 공백은 버린다.
type text string

func (t *text) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return mismatch(n, "string")
	}
	*t = text(strings.TrimSpace(n.Value))
	return nil
}

// number 는 정수나 실수 스칼라. NaN/Inf 는 받지 않는다.
type number float64

func (x *number) UnmarshalYAML(n *yaml.Node) error {
	tag := n.ShortTag()
	if n.Kind != yaml.ScalarNode || (tag != "!!int" && tag != "!!float") {
		return mismatch(n, "number")
	}
	var f float64
	if err := n.Decode(&f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return mismatch(n, "number")
	}
	*x = number(f)
	return nil
}

// flag 는 true/false 스칼라.
type flag bool

func (b *flag) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return mismatch(n, "boolean")
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		return mismatch(n, "boolean")
	}
	*b = flag(v)
	return nil
}

// date 는 CoerceDate 가 받는 모든 표현(문자열, 에포크 밀리초, 타임스탬프).
type date struct{ time.Time }

func (d *date) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return mismatch(n, "date")
	}
	t, err := CoerceDate(v)
	if err != nil {
		return &yaml.TypeError{Errors: []string{err.Error()}}
	}
	d.Time = t
	return nil
}

func mismatch(n *yaml.Node, want string) error {
	return &yaml.TypeError{Errors: []string{fmt.Sprintf("cannot use %s %q as %s", n.ShortTag(), n.Value, want)}}
}
