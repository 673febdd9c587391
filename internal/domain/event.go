package domain

import "time"

// Category イベントカテゴリの閉じた列挙型
type Category string

const (
	CategoryCouncilMeeting Category = "COUNCIL_MEETING"
	CategorySocial         Category = "SOCIAL"
	CategoryWorkshop       Category = "WORKSHOP"
	CategoryOther          Category = "OTHER"
)

// ParseCategory 文字列をCategoryに変換する。未知の値や空文字はOTHERになる
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryCouncilMeeting, CategorySocial, CategoryWorkshop:
		return Category(s)
	default:
		return CategoryOther
	}
}

// Event 正規化済みカレンダーイベントのドメインエンティティ。
// StartTime / EndTime は常にUTCに正規化される。
// StartDateOnly / EndDateOnly（YYYY-MM-DD）は終日イベントの場合のみ設定される。
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"startIso"`
	EndTime       time.Time `json:"endIso"`
	IsAllDay      bool      `json:"allDay"`
	StartDateOnly string    `json:"startDateOnly,omitempty"`
	EndDateOnly   string    `json:"endDateOnly,omitempty"`
	Location      string    `json:"location,omitempty"`
	CalendarURL   string    `json:"calendarUrl,omitempty"`
	Description   string    `json:"description,omitempty"`
	Category      Category  `json:"category"`
	FlyerURLs     []string  `json:"flyerUrls"`
}
