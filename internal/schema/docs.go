package schema

// frontmatter 를 디코딩하는 종류별 문서. 서로 독립이며 공통 베이스는 없다.
// 검증 규칙은 validate 태그에, 타입 검사는 필드 타입에 있다.

type reviewDoc struct {
	Title       text    `yaml:"title" validate:"required"`
	Description text    `yaml:"description" validate:"required"`
	Product     text    `yaml:"product" validate:"required"`
	Brand       text    `yaml:"brand" validate:"required"`
	Type        text    `yaml:"type" validate:"required,oneof=무선청소기 로봇청소기 물걸레청소기 핸디청소기 스틱청소기"`
	Rating      *number `yaml:"rating" validate:"required,min=1,max=5"`
	Price       text    `yaml:"price" validate:"required"`
	Pros        []text  `yaml:"pros"`
	Cons        []text  `yaml:"cons"`
	PubDate     date    `yaml:"pubDate" validate:"required"`
	UpdatedDate date    `yaml:"updatedDate"`
	HeroImage   text    `yaml:"heroImage"`
	CoupangURL  text    `yaml:"coupangUrl"`
	Draft       flag    `yaml:"draft"`
}

type compareDoc struct {
	Title       text   `yaml:"title" validate:"required"`
	Description text   `yaml:"description" validate:"required"`
	Products    []text `yaml:"products" validate:"required"`
	Type        text   `yaml:"type" validate:"required,oneof=무선청소기 로봇청소기 물걸레청소기 핸디청소기 스틱청소기"`
	Winner      text   `yaml:"winner"`
	PubDate     date   `yaml:"pubDate" validate:"required"`
	UpdatedDate date   `yaml:"updatedDate"`
	HeroImage   text   `yaml:"heroImage"`
	Draft       flag   `yaml:"draft"`
}

type guideDoc struct {
	Title       text `yaml:"title" validate:"required"`
	Description text `yaml:"description" validate:"required"`
	Category    text `yaml:"category" validate:"required,oneof=구매가이드 사용팁 관리방법 기타"`
	PubDate     date `yaml:"pubDate" validate:"required"`
	UpdatedDate date `yaml:"updatedDate"`
	HeroImage   text `yaml:"heroImage"`
	Draft       flag `yaml:"draft"`
}

// dated 는 updatedDate >= pubDate 구조체 검증에 쓴다.
type dated interface {
	dates() (pub, updated date)
}

func (d reviewDoc) dates() (date, date)  { return d.PubDate, d.UpdatedDate }
func (d compareDoc) dates() (date, date) { return d.PubDate, d.UpdatedDate }
func (d guideDoc) dates() (date, date)   { return d.PubDate, d.UpdatedDate }

func strs(in []text) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
