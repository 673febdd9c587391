package gateway

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/cmcw-site/google-calendar-events-api/internal/description"
	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
)

// untitledEvent タイトルが空のイベントに表示するプレースホルダ
const untitledEvent = "Untitled Event"

// convertToEvent Google Calendar APIのイベントをドメインエンティティに変換する。
// ICSアダプタも同じ中間形式を生成するため、両取得元で共通の変換になる。
// ID・開始・終了のいずれかが欠落または解析不能な場合はエラーを返し、
// 呼び出し側はそのレコードだけを読み飛ばす
func convertToEvent(item *calendar.Event) (domain.Event, error) {
	if item == nil || item.Id == "" {
		return domain.Event{}, fmt.Errorf("イベントIDが設定されていません")
	}

	event := domain.Event{
		ID:          item.Id,
		Title:       strings.TrimSpace(item.Summary),
		Location:    strings.TrimSpace(item.Location),
		CalendarURL: strings.TrimSpace(item.HtmlLink),
	}
	if event.Title == "" {
		event.Title = untitledEvent
	}

	// 開始境界の処理
	if item.Start == nil {
		return domain.Event{}, fmt.Errorf("開始時刻が設定されていません")
	}
	switch {
	case item.Start.DateTime != "":
		startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return domain.Event{}, fmt.Errorf("開始時刻の解析に失敗しました: %v", err)
		}
		event.StartTime = startTime.UTC()
	case item.Start.Date != "":
		// 終日イベント: 日付のみの境界
		startTime, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return domain.Event{}, fmt.Errorf("開始日の解析に失敗しました: %v", err)
		}
		event.StartTime = startTime.UTC()
		event.IsAllDay = true
		event.StartDateOnly = item.Start.Date
	default:
		return domain.Event{}, fmt.Errorf("開始時刻が設定されていません")
	}

	// 終了境界の処理
	if item.End == nil {
		return domain.Event{}, fmt.Errorf("終了時刻が設定されていません")
	}
	switch {
	case item.End.DateTime != "":
		endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return domain.Event{}, fmt.Errorf("終了時刻の解析に失敗しました: %v", err)
		}
		event.EndTime = endTime.UTC()
	case item.End.Date != "":
		endTime, err := time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return domain.Event{}, fmt.Errorf("終了日の解析に失敗しました: %v", err)
		}
		event.EndTime = endTime.UTC()
		if event.IsAllDay {
			event.EndDateOnly = item.End.Date
		}
	default:
		return domain.Event{}, fmt.Errorf("終了時刻が設定されていません")
	}

	// 説明文からミニフォーマットを抽出
	parsed := description.Parse(item.Description)
	event.Description = parsed.Description
	event.Category = parsed.Category
	event.FlyerURLs = parsed.FlyerURLs

	return event, nil
}
