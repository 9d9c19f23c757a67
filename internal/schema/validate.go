package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"cheongso-ryeok/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 오류의 필드 이름은 frontmatter 키(yaml 태그)로 보고한다
	v.RegisterTagNameFunc(yamlName)
	// 비어 있는 date 는 nil 로 보여서 required 가 걸리게 한다
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, date{})
	v.RegisterStructValidation(datesInOrder, reviewDoc{}, compareDoc{}, guideDoc{})
	return v
}

func yamlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

func datesInOrder(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(dated)
	if !ok {
		return
	}
	pub, updated := d.dates()
	if pub.IsZero() || updated.IsZero() || !updated.Before(pub.Time) {
		return
	}
	sl.ReportError(updated.Format("2006-01-02"), "updatedDate", "UpdatedDate", "gtefield", "pubDate")
}

var expected = map[reflect.Type]string{
	reflect.TypeOf(text("")):        "string",
	reflect.TypeOf((*number)(nil)): "number",
	reflect.TypeOf(flag(false)):     "boolean",
	reflect.TypeOf(date{}):          "date",
	reflect.TypeOf([]text(nil)):     "list of strings",
}

// check 는 raw 를 doc 으로 디코딩하고 validate 태그를 검사한다.
// 타입이 맞지 않는 필드와 규칙을 어긴 필드를 모두 모아 돌려준다.
func check(kind model.Kind, raw map[string]any, doc any) Violations {
	errs := decode(kind, raw, doc)
	failed := make(map[string]bool, len(errs))
	for _, v := range errs {
		failed[v.Field] = true
	}
	err := validate.Struct(doc)
	var fes validator.ValidationErrors
	switch {
	case errors.As(err, &fes):
		for _, fe := range fes {
			if !failed[fe.Field()] {
				errs = append(errs, violation(kind, fe))
			}
		}
	case err != nil:
		errs = append(errs, &SchemaViolation{Kind: kind, Field: "frontmatter", Constraint: err.Error()})
	}
	return errs
}

// decode 는 frontmatter 키마다 해당 필드로 yaml.v3 디코딩한다.
// 모르는 키는 무시하고, 타입이 맞지 않는 키는 위반으로 남긴다.
func decode(kind model.Kind, raw map[string]any, doc any) Violations {
	var errs Violations
	v := reflect.ValueOf(doc).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := yamlName(f)
		val, ok := raw[name]
		if !ok || val == nil {
			continue
		}
		var n yaml.Node
		err := n.Encode(val)
		if err == nil {
			err = n.Decode(v.Field(i).Addr().Interface())
		}
		if err != nil {
			v.Field(i).Set(reflect.Zero(f.Type))
			errs = append(errs, &SchemaViolation{Kind: kind, Field: name, Constraint: expected[f.Type], Value: val})
		}
	}
	return errs
}

func violation(kind model.Kind, fe validator.FieldError) *SchemaViolation {
	v := &SchemaViolation{Kind: kind, Field: fe.Field(), Constraint: constraint(fe)}
	if fe.Tag() != "required" {
		v.Value = plain(fe.Value())
	}
	return v
}

func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required value"
	case "oneof":
		return "one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "number >= " + fe.Param()
	case "max":
		return "number <= " + fe.Param()
	case "gtefield":
		return "date on or after " + fe.Param()
	}
	return fe.Tag() + "=" + fe.Param()
}

func plain(v any) any {
	switch x := v.(type) {
	case text:
		return string(x)
	case number:
		return float64(x)
	case *number:
		if x == nil {
			return nil
		}
		return float64(*x)
	}
	return v
}
