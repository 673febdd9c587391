package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
)

// ssmParameterGetter Parameter Store取得のポート（テストでモック可能にする）
type ssmParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Config アプリケーション設定構造体
type Config struct {
	// Google Calendar API設定（公開カレンダーの読み取り）
	CalendarID        string
	APIKey            string
	GoogleCredentials string // サービスアカウントJSON（APIキーの代わりに使用可）

	// ICSフィード設定。設定されている場合はAPIより優先される
	ICSURL string

	// その他設定
	LogLevel string
	Timezone string

	// AWS関連（本番環境でのみ使用）
	ssmClient ssmParameterGetter
}

// Load 環境に応じて設定を読み込み
func Load() (*Config, error) {
	// AWS Lambda環境かどうか判定
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return loadAWSConfig()
	}
	return loadLocalConfig()
}

// loadLocalConfig ローカル開発環境用の設定読み込み
func loadLocalConfig() (*Config, error) {
	// .envファイルを読み込み（存在する場合のみ）
	if err := godotenv.Load(); err != nil {
		// .envファイルが存在しない場合はエラーにしない
		fmt.Printf("Warning: .envファイルが見つかりません: %v\n", err)
	}

	cfg := &Config{
		CalendarID:        getEnvOrDefault("GOOGLE_CALENDAR_ID", ""),
		APIKey:            getEnvOrDefault("GOOGLE_CALENDAR_API_KEY", ""),
		GoogleCredentials: getEnvOrDefault("GOOGLE_CREDENTIALS", ""),
		ICSURL:            getEnvOrDefault("GOOGLE_CALENDAR_ICS_URL", ""),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "INFO"),
		Timezone:          getEnvOrDefault("TIMEZONE", "America/Los_Angeles"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadAWSConfig AWS Lambda環境用の設定読み込み
func loadAWSConfig() (*Config, error) {
	// AWS設定を初期化
	awsConfig, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("AWS設定の読み込みに失敗しました: %v", err)
	}

	ssmClient := ssm.NewFromConfig(awsConfig)

	cfg := &Config{
		CalendarID: getEnvOrDefault("GOOGLE_CALENDAR_ID", ""),
		ICSURL:     getEnvOrDefault("GOOGLE_CALENDAR_ICS_URL", ""),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "INFO"),
		Timezone:   getEnvOrDefault("TIMEZONE", "America/Los_Angeles"),
		ssmClient:  ssmClient,
	}

	// Parameter Storeから機密情報を取得
	if err := cfg.loadFromParameterStore(); err != nil {
		return nil, fmt.Errorf("Parameter Storeからの設定読み込みに失敗しました: %v", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromParameterStore Parameter StoreからAPIキーを読み込み。
// ICSフィードのみで動作する構成ではAPIキーは不要なのでスキップする
func (c *Config) loadFromParameterStore() error {
	ctx := context.TODO()

	if c.CalendarID == "" {
		return nil
	}

	apiKeyParam := getEnvOrDefault("GOOGLE_API_KEY_PARAM", "/gcal-events-api/google-api-key")
	apiKey, err := c.getParameter(ctx, apiKeyParam, true)
	if err != nil {
		return fmt.Errorf("Google APIキーの取得に失敗しました: %v", err)
	}
	c.APIKey = apiKey

	return nil
}

// getParameter Parameter Storeから指定されたパラメータを取得
func (c *Config) getParameter(ctx context.Context, paramName string, withDecryption bool) (string, error) {
	input := &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(withDecryption),
	}

	result, err := c.ssmClient.GetParameter(ctx, input)
	if err != nil {
		return "", fmt.Errorf("パラメータ %s の取得に失敗しました: %v", paramName, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil || *result.Parameter.Value == "" {
		return "", fmt.Errorf("パラメータ %s が空の値です", paramName)
	}

	return *result.Parameter.Value, nil
}

// validate 取得元が一つも構成されていない場合は設定エラー。
// フェッチを試みる前にここで検出する
func (c *Config) validate() error {
	if !c.HasICS() && !c.HasAPI() {
		return fmt.Errorf("GOOGLE_CALENDAR_ICS_URL または GOOGLE_CALENDAR_ID と認証情報（GOOGLE_CALENDAR_API_KEY / GOOGLE_CREDENTIALS）のいずれかを設定してください")
	}
	return nil
}

// HasICS ICSフィードが構成されているか
func (c *Config) HasICS() bool {
	return c.ICSURL != ""
}

// HasAPI Google Calendar APIが構成されているか
func (c *Config) HasAPI() bool {
	return c.CalendarID != "" && (c.APIKey != "" || c.GoogleCredentials != "")
}

// getEnvOrDefault 環境変数を取得し、存在しない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
