package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/cmcw-site/google-calendar-events-api/internal/config"
	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
	"github.com/cmcw-site/google-calendar-events-api/internal/gateway"
	"github.com/cmcw-site/google-calendar-events-api/internal/usecase"
)

// LambdaEvent Lambda実行時のイベント構造体
type LambdaEvent struct {
	// Function URL / API Gateway経由の実行なので特に使用しない
}

// LambdaResponse Lambda実行結果のレスポンス
type LambdaResponse struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message,omitempty"`
	Events     []domain.Event `json:"events,omitempty"`
}

// handler Lambda関数のメインハンドラー
func handler(ctx context.Context, event LambdaEvent) (LambdaResponse, error) {

	// 設定を読み込み
	cfg, err := config.Load()
	if err != nil {
		return LambdaResponse{
			StatusCode: 500,
			Message:    "設定読み込みエラー",
		}, err
	}

	// 取得元を初期化
	eventRepo, err := buildEventRepository(ctx, cfg)
	if err != nil {
		return LambdaResponse{
			StatusCode: 500,
			Message:    "カレンダークライアント初期化エラー",
		}, err
	}

	// 今後180日分のイベントを取得
	uc := usecase.NewFetchUpcomingEventsUseCase(eventRepo)
	events, err := uc.Execute(ctx, time.Now())
	if err != nil {
		log.Printf("イベントの取得に失敗しました: %v", err)
		return LambdaResponse{
			StatusCode: 502,
			Message:    "イベント取得エラー",
		}, err
	}

	// 0件でも正常応答（取得失敗とは区別する）
	return LambdaResponse{
		StatusCode: 200,
		Events:     events,
	}, nil
}

// buildEventRepository 設定に応じてイベント取得元を選択する。
// ICSフィードが構成されている場合はAPIより優先する
func buildEventRepository(ctx context.Context, cfg *config.Config) (usecase.EventRepository, error) {
	if cfg.HasICS() {
		return gateway.NewICSCalendarRepository(cfg.ICSURL), nil
	}
	if cfg.GoogleCredentials != "" {
		return gateway.NewGoogleCalendarRepositoryFromCredentials(ctx, []byte(cfg.GoogleCredentials), cfg.CalendarID)
	}
	return gateway.NewGoogleCalendarRepository(ctx, cfg.APIKey, cfg.CalendarID)
}

func main() {
	lambda.Start(handler)
}
