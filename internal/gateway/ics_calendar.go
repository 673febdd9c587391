package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
)

// ICSCalendarRepository ICSフィードを使用したEventRepositoryの実装。
// フィードは期間フィルタもソートもされていないため、取得後にこちらで行う
type ICSCalendarRepository struct {
	icsURL     string
	httpClient *http.Client
}

// NewICSCalendarRepository ICSフィードリポジトリを作成
func NewICSCalendarRepository(icsURL string) *ICSCalendarRepository {
	return &ICSCalendarRepository{
		icsURL: icsURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchEvents ICSフィードを取得し、指定期間に重なるイベントを開始時刻昇順で返す。
// 期間に部分的にしか重ならないイベントも含める
func (r *ICSCalendarRepository) FetchEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]domain.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.icsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %v", err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ICSフィードの取得に失敗しました: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ICSフィードの読み込みに失敗しました: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ICSフィードの取得が失敗しました (Status: %d): %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// イベントを変換。不正なレコードはバッチ全体を失敗させず読み飛ばす
	items := parseICSEvents(string(body))
	events := make([]domain.Event, 0, len(items))
	for _, item := range items {
		event, err := convertToEvent(item)
		if err != nil {
			fmt.Printf("Warning: イベントの変換をスキップしました: %v\n", err)
			continue
		}
		events = append(events, event)
	}

	// 期間の重なり判定: event.end >= timeMin かつ event.start <= timeMax
	filtered := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !e.EndTime.Before(timeMin) && !e.StartTime.After(timeMax) {
			filtered = append(filtered, e)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].StartTime.Before(filtered[j].StartTime)
	})

	if int64(len(filtered)) > maxResults {
		filtered = filtered[:maxResults]
	}

	return filtered, nil
}
