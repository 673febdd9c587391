package wordle

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Schedule 日替わりの正解語スケジュール。
// 「今日」の判定は固定タイムゾーンでの日付キー（YYYY-MM-DD）による
type Schedule struct {
	TimeZone    string
	StartDate   string
	EndDate     string
	WordsByDate map[string]string
}

var dateKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DefaultSchedule CMCW開催週のスケジュール
func DefaultSchedule() Schedule {
	return Schedule{
		TimeZone:  "America/Los_Angeles",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
		WordsByDate: map[string]string{
			"2026-03-02": "MUIRS",
			"2026-03-03": "CELEB",
			"2026-03-04": "WEEKS",
			"2026-03-05": "SPARK",
			"2026-03-06": "UNITY",
		},
	}
}

// DateKey 指定時刻をスケジュールのタイムゾーンで日付キーに変換する
func (s Schedule) DateKey(t time.Time) (string, error) {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return "", fmt.Errorf("タイムゾーンの読み込みに失敗しました: %v", err)
	}
	return t.In(loc).Format("2006-01-02"), nil
}

// AnswerFor 日付キーに対応する正解語を返す。対象日でない場合はfalse
func (s Schedule) AnswerFor(dateKey string) (string, bool) {
	answer, ok := s.WordsByDate[dateKey]
	return answer, ok
}

// DayNumber 開催初日を1日目とした日数を返す。開催期間外はfalse
func (s Schedule) DayNumber(dateKey string) (int, bool) {
	if dateKey < s.StartDate || dateKey > s.EndDate {
		return 0, false
	}
	start, err := time.Parse("2006-01-02", s.StartDate)
	if err != nil {
		return 0, false
	}
	day, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return 0, false
	}
	return int(day.Sub(start).Hours()/24) + 1, true
}

// Validate スケジュール定義の問題点を列挙する。問題がなければ空のスライスを返す
func (s Schedule) Validate() []string {
	issues := make([]string, 0)

	keys := make([]string, 0, len(s.WordsByDate))
	for k := range s.WordsByDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, hasStart := s.WordsByDate[s.StartDate]
	_, hasEnd := s.WordsByDate[s.EndDate]
	if !hasStart || !hasEnd {
		issues = append(issues, "開始日または終了日のエントリがWordsByDateにありません")
	}

	for _, key := range keys {
		if !dateKeyRe.MatchString(key) {
			issues = append(issues, fmt.Sprintf("日付キーの形式が不正です: %s", key))
		}
		if !validWordRe.MatchString(s.WordsByDate[key]) {
			issues = append(issues, fmt.Sprintf("%s の正解語が不正です（英字5文字にしてください）", key))
		}
	}

	seen := make(map[string]bool)
	for _, key := range keys {
		answer := s.WordsByDate[key]
		if seen[answer] {
			issues = append(issues, fmt.Sprintf("正解語が重複しています: %s", answer))
		}
		seen[answer] = true
	}

	return issues
}
