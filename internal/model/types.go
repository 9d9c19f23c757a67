// 패키지 model 은 콘텐츠 컬렉션의 레코드 타입을 정의한다:
// - 리뷰(review) / 비교(compare) / 가이드(guide) 세 가지 독립 레코드
// - 청소기 타입, 가이드 분류 같은 닫힌 열거형
// - 로드된 항목(Entry)과 피드용 읽기 전용 뷰(Meta)
package model

import "time"

// Kind 는 컬렉션 종류이며 링크의 첫 경로 세그먼트로도 쓰인다.
type Kind string

const (
	KindReview  Kind = "review"
	KindCompare Kind = "compare"
	KindGuide   Kind = "guide"
)

// Kinds 는 전체 컬렉션 종류를 피드 병합 순서대로 나열한다.
var Kinds = []Kind{KindReview, KindCompare, KindGuide}

// Valid 는 알려진 컬렉션 종류인지 확인한다.
func (k Kind) Valid() bool {
	switch k {
	case KindReview, KindCompare, KindGuide:
		return true
	}
	return false
}

// Image 는 image() 로 해석된 로컬 이미지 참조.
type Image struct {
	Src    string `json:"src"`
	Path   string `json:"-"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
}

// Review 는 단일 제품 리뷰.
type Review struct {
	Title       string
	Description string
	Product     string
	Brand       string
	Type        VacuumType
	Rating      float64
	Price       string
	Pros        []string
	Cons        []string
	PubDate     time.Time
	UpdatedDate time.Time
	HeroImage   *Image
	CoupangURL  string
	Draft       bool
}

// Compare 는 여러 제품 비교 글.
type Compare struct {
	Title       string
	Description string
	Products    []string
	Type        VacuumType
	Winner      string
	PubDate     time.Time
	UpdatedDate time.Time
	HeroImage   *Image
	Draft       bool
}

// Guide 는 구매 가이드/사용 팁 등 일반 글.
type Guide struct {
	Title       string
	Description string
	Category    GuideCategory
	PubDate     time.Time
	UpdatedDate time.Time
	HeroImage   *Image
	Draft       bool
}

// Meta 는 세 레코드에서 공통으로 꺼내 쓰는 필드의 복사본이다.
// 레코드끼리 상속 관계가 있는 것은 아니다.
type Meta struct {
	Title       string
	Description string
	PubDate     time.Time
	UpdatedDate time.Time
	HeroImage   *Image
	Draft       bool
}

// Record 는 Review/Compare/Guide 만 구현하는 닫힌 인터페이스.
type Record interface {
	Kind() Kind
	Meta() Meta
	sealed()
}

func (*Review) Kind() Kind  { return KindReview }
func (*Compare) Kind() Kind { return KindCompare }
func (*Guide) Kind() Kind   { return KindGuide }

func (*Review) sealed()  {}
func (*Compare) sealed() {}
func (*Guide) sealed()   {}

func (r *Review) Meta() Meta {
	return Meta{r.Title, r.Description, r.PubDate, r.UpdatedDate, r.HeroImage, r.Draft}
}

func (c *Compare) Meta() Meta {
	return Meta{c.Title, c.Description, c.PubDate, c.UpdatedDate, c.HeroImage, c.Draft}
}

func (g *Guide) Meta() Meta {
	return Meta{g.Title, g.Description, g.PubDate, g.UpdatedDate, g.HeroImage, g.Draft}
}

// Entry 는 소스 파일 하나를 검증한 결과.
// ID 는 컬렉션 디렉터리 기준 슬러그이며 링크 생성에 쓰인다.
type Entry struct {
	Kind   Kind
	ID     string
	Path   string
	Body   []byte
	Record Record
}

// Link 는 사이트 내부 경로 /{kind}/{id}/ 를 돌려준다.
func (e Entry) Link() string {
	return "/" + string(e.Kind) + "/" + e.ID + "/"
}

// Collections 는 종류별로 로드된 항목 묶음.
type Collections map[Kind][]Entry

// All 은 Kinds 순서(리뷰→비교→가이드)로 이어 붙인 전체 항목을 돌려준다.
func (c Collections) All() []Entry {
	n := 0
	for _, k := range Kinds {
		n += len(c[k])
	}
	out := make([]Entry, 0, n)
	for _, k := range Kinds {
		out = append(out, c[k]...)
	}
	return out
}
