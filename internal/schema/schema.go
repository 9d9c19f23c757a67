// 패키지 schema 는 콘텐츠 frontmatter 를 컬렉션별 스키마로 검증한다:
// - yaml.v3 로 종류별 문서에 디코딩하고 타입이 다른 필드는 위반으로 남김
// - 필수/범위/열거형/날짜 순서는 go-playground/validator 태그로 검사
// - 위반은 모두 모아서 Violations 로, 이미지는 주입된 ImageResolver 로 해석
package schema

import (
	"fmt"

	"cheongso-ryeok/internal/model"
)

// ImageResolver 는 heroImage 같은 이미지 참조를 해석한다.
type ImageResolver interface {
	ResolveImage(ref string) (*model.Image, error)
}

// ImageResolverFunc 는 함수를 ImageResolver 로 쓰기 위한 어댑터.
type ImageResolverFunc func(ref string) (*model.Image, error)

func (f ImageResolverFunc) ResolveImage(ref string) (*model.Image, error) { return f(ref) }

// Validate 는 kind 에 맞는 스키마로 raw 를 검증한다.
func Validate(kind model.Kind, raw map[string]any, images ImageResolver) (model.Record, error) {
	var (
		rec model.Record
		err error
	)
	switch kind {
	case model.KindReview:
		var v *model.Review
		v, err = ValidateReview(raw, images)
		rec = v
	case model.KindCompare:
		var v *model.Compare
		v, err = ValidateCompare(raw, images)
		rec = v
	case model.KindGuide:
		var v *model.Guide
		v, err = ValidateGuide(raw, images)
		rec = v
	default:
		return nil, fmt.Errorf("unknown collection kind %q", kind)
	}
	if err != nil {
		// 타입 있는 nil 포인터가 인터페이스로 새지 않게 한다
		return nil, err
	}
	return rec, nil
}

// ValidateReview 는 리뷰 스키마. rating 은 1~5.
func ValidateReview(raw map[string]any, images ImageResolver) (*model.Review, error) {
	var doc reviewDoc
	errs := check(model.KindReview, raw, &doc)
	hero, errs := resolveImage(model.KindReview, doc.HeroImage, images, errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &model.Review{
		Title:       string(doc.Title),
		Description: string(doc.Description),
		Product:     string(doc.Product),
		Brand:       string(doc.Brand),
		Type:        model.VacuumType(doc.Type),
		Rating:      float64(*doc.Rating),
		Price:       string(doc.Price),
		Pros:        strs(doc.Pros),
		Cons:        strs(doc.Cons),
		PubDate:     doc.PubDate.Time,
		UpdatedDate: doc.UpdatedDate.Time,
		HeroImage:   hero,
		CoupangURL:  string(doc.CoupangURL),
		Draft:       bool(doc.Draft),
	}, nil
}

// ValidateCompare 는 비교 스키마. winner 는 선택.
func ValidateCompare(raw map[string]any, images ImageResolver) (*model.Compare, error) {
	var doc compareDoc
	errs := check(model.KindCompare, raw, &doc)
	hero, errs := resolveImage(model.KindCompare, doc.HeroImage, images, errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &model.Compare{
		Title:       string(doc.Title),
		Description: string(doc.Description),
		Products:    strs(doc.Products),
		Type:        model.VacuumType(doc.Type),
		Winner:      string(doc.Winner),
		PubDate:     doc.PubDate.Time,
		UpdatedDate: doc.UpdatedDate.Time,
		HeroImage:   hero,
		Draft:       bool(doc.Draft),
	}, nil
}

// ValidateGuide 는 가이드 스키마.
func ValidateGuide(raw map[string]any, images ImageResolver) (*model.Guide, error) {
	var doc guideDoc
	errs := check(model.KindGuide, raw, &doc)
	hero, errs := resolveImage(model.KindGuide, doc.HeroImage, images, errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &model.Guide{
		Title:       string(doc.Title),
		Description: string(doc.Description),
		Category:    model.GuideCategory(doc.Category),
		PubDate:     doc.PubDate.Time,
		UpdatedDate: doc.UpdatedDate.Time,
		HeroImage:   hero,
		Draft:       bool(doc.Draft),
	}, nil
}

// resolveImage 는 heroImage 를 해석한다. 실패하면 위반을 더한다.
func resolveImage(kind model.Kind, ref text, images ImageResolver, errs Violations) (*model.Image, Violations) {
	if ref == "" {
		return nil, errs
	}
	if images == nil {
		return &model.Image{Src: string(ref)}, errs
	}
	img, err := images.ResolveImage(string(ref))
	if err != nil {
		errs = append(errs, &SchemaViolation{
			Kind: kind, Field: "heroImage", Constraint: "resolvable local image (" + err.Error() + ")", Value: string(ref),
		})
		return nil, errs
	}
	return img, errs
}
