package schema

import (
	"fmt"
	"strings"

	"cheongso-ryeok/internal/model"
)

// SchemaViolation 은 한 필드가 스키마 제약을 어긴 경우.
// Constraint 에는 기대한 제약을 사람이 읽을 수 있는 형태로 담는다.
type SchemaViolation struct {
	Kind       model.Kind
	Entry      string
	Field      string
	Constraint string
	Value      any
}

func (v *SchemaViolation) Error() string {
	var b strings.Builder
	b.WriteString(string(v.Kind))
	if v.Entry != "" {
		b.WriteString("/")
		b.WriteString(v.Entry)
	}
	fmt.Fprintf(&b, ": field %q: expected %s", v.Field, v.Constraint)
	if v.Value != nil {
		fmt.Fprintf(&b, ", got %s", describe(v.Value))
	}
	return b.String()
}

// Violations 는 레코드 하나에서 발견된 위반 전체.
type Violations []*SchemaViolation

func (vs Violations) Error() string {
	switch len(vs) {
	case 0:
		return "no schema violations"
	case 1:
		return vs[0].Error()
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Error()
	}
	return fmt.Sprintf("%d schema violations: %s", len(vs), strings.Join(parts, "; "))
}

// Unwrap 은 errors.As 로 개별 *SchemaViolation 을 꺼낼 수 있게 한다.
func (vs Violations) Unwrap() []error {
	out := make([]error, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// Field 는 해당 필드의 첫 위반을 돌려준다.
func (vs Violations) Field(name string) *SchemaViolation {
	for _, v := range vs {
		if v.Field == name {
			return v
		}
	}
	return nil
}

// WithEntry 는 모든 위반에 항목 식별자를 채운다.
func (vs Violations) WithEntry(id string) Violations {
	for _, v := range vs {
		v.Entry = id
	}
	return vs
}

func describe(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []any:
		return fmt.Sprintf("list of %d", len(x))
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%v (%T)", x, x)
	}
}
