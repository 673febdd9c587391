package usecase

import (
	"context"
	"log"
	"time"

	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
)

// EventRepository カレンダーイベントを取得するポート
type EventRepository interface {
	FetchEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]domain.Event, error)
}

const (
	// windowDays 取得対象期間（約6ヶ月）
	windowDays = 180
	// maxResults 1回の取得で返すイベント数の上限
	maxResults = 75
)

// FetchUpcomingEventsUseCase 今後のイベント一覧取得ユースケース
type FetchUpcomingEventsUseCase struct {
	eventRepo EventRepository
}

// NewFetchUpcomingEventsUseCase ユースケースを生成
func NewFetchUpcomingEventsUseCase(eventRepo EventRepository) *FetchUpcomingEventsUseCase {
	return &FetchUpcomingEventsUseCase{
		eventRepo: eventRepo,
	}
}

// Execute 現在時刻から180日先までのイベントを開始時刻昇順で取得する。
// 0件は正常な空結果であり、取得失敗（エラー）とは区別される
func (uc *FetchUpcomingEventsUseCase) Execute(ctx context.Context, now time.Time) ([]domain.Event, error) {
	timeMin := now
	timeMax := now.Add(windowDays * 24 * time.Hour)

	events, err := uc.eventRepo.FetchEvents(ctx, timeMin, timeMax, maxResults)
	if err != nil {
		log.Printf("イベントの取得に失敗しました: %v", err)
		return nil, err
	}

	return events, nil
}
