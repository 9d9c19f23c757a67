package model

// VacuumType 은 청소기 분류. 값은 콘텐츠 파일에 쓰는 한국어 표기 그대로다.
type VacuumType string

const (
	VacuumWireless VacuumType = "무선청소기"
	VacuumRobot    VacuumType = "로봇청소기"
	VacuumMop      VacuumType = "물걸레청소기"
	VacuumHandheld VacuumType = "핸디청소기"
	VacuumStick    VacuumType = "스틱청소기"
)

// VacuumTypes 는 허용되는 전체 값(닫힌 집합).
var VacuumTypes = []VacuumType{VacuumWireless, VacuumRobot, VacuumMop, VacuumHandheld, VacuumStick}

var vacuumCodes = map[VacuumType]string{
	VacuumWireless: "wireless",
	VacuumRobot:    "robot",
	VacuumMop:      "mop",
	VacuumHandheld: "handheld",
	VacuumStick:    "stick",
}

// Valid 는 닫힌 집합에 속하는 값인지 확인한다.
func (t VacuumType) Valid() bool {
	_, ok := vacuumCodes[t]
	return ok
}

// Code 는 index.json 에 쓰는 영문 코드(wireless 등). 알 수 없는 값이면 "".
func (t VacuumType) Code() string { return vacuumCodes[t] }

// GuideCategory 는 가이드 글 분류.
type GuideCategory string

const (
	CategoryBuyingGuide GuideCategory = "구매가이드"
	CategoryUsageTip    GuideCategory = "사용팁"
	CategoryMaintenance GuideCategory = "관리방법"
	CategoryOther       GuideCategory = "기타"
)

var GuideCategories = []GuideCategory{CategoryBuyingGuide, CategoryUsageTip, CategoryMaintenance, CategoryOther}

var categoryCodes = map[GuideCategory]string{
	CategoryBuyingGuide: "buying-guide",
	CategoryUsageTip:    "usage-tip",
	CategoryMaintenance: "maintenance",
	CategoryOther:       "other",
}

func (c GuideCategory) Valid() bool {
	_, ok := categoryCodes[c]
	return ok
}

// Code 는 index.json 에 쓰는 영문 코드(buying-guide 등).
func (c GuideCategory) Code() string { return categoryCodes[c] }
