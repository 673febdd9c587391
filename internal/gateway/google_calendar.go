package gateway

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
)

// GoogleCalendarRepository Google Calendar APIを使用したEventRepositoryの実装
type GoogleCalendarRepository struct {
	service    *calendar.Service
	calendarID string
}

// NewGoogleCalendarRepository APIキー認証でGoogle Calendarリポジトリを作成。
// 公開カレンダーの読み取りにはAPIキーで十分
func NewGoogleCalendarRepository(ctx context.Context, apiKey, calendarID string) (*GoogleCalendarRepository, error) {
	service, err := calendar.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google Calendar APIサービスの作成に失敗しました: %v", err)
	}

	return &GoogleCalendarRepository{
		service:    service,
		calendarID: calendarID,
	}, nil
}

// NewGoogleCalendarRepositoryFromCredentials サービスアカウント認証でリポジトリを作成
func NewGoogleCalendarRepositoryFromCredentials(ctx context.Context, credentialsJSON []byte, calendarID string) (*GoogleCalendarRepository, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		credentialsJSON,
		calendar.CalendarReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("google認証情報の読み込みに失敗しました: %v", err)
	}

	service, err := calendar.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("google Calendar APIサービスの作成に失敗しました: %v", err)
	}

	return &GoogleCalendarRepository{
		service:    service,
		calendarID: calendarID,
	}, nil
}

// FetchEvents 指定期間のイベントを取得する。
// 期間フィルタと並び順（開始時刻昇順）はAPI側に委ねる。
// ページングは行わないため、取得できるのは先頭ページのみ
func (r *GoogleCalendarRepository) FetchEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]domain.Event, error) {
	eventsCall := r.service.Events.List(r.calendarID).
		TimeMin(timeMin.UTC().Format(time.RFC3339)).
		TimeMax(timeMax.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx)

	events, err := eventsCall.Do()
	if err != nil {
		return nil, fmt.Errorf("カレンダーイベントの取得に失敗しました: %v", err)
	}

	// イベントを変換。不正なレコードはバッチ全体を失敗させず読み飛ばす
	domainEvents := make([]domain.Event, 0, len(events.Items))
	for _, item := range events.Items {
		domainEvent, err := convertToEvent(item)
		if err != nil {
			fmt.Printf("Warning: イベントの変換をスキップしました: %v\n", err)
			continue
		}
		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}
