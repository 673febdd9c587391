package description

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
)

// Parsed 説明文から抽出した構造化メタデータ。
// Descriptionが空文字の場合は「説明なし」を意味する
type Parsed struct {
	Description string
	Category    domain.Category
	FlyerURLs   []string
}

// ミニフォーマットのヘッダ行: 行頭の `KEY:` 形式。キーは大文字小文字を区別しない
var (
	headerRe   = regexp.MustCompile(`(?i)^([A-Z0-9_]+):\s*(.*)$`)
	flyerKeyRe = regexp.MustCompile(`^FLYER_([0-9]+)_URL$`)
)

// parseState ミニフォーマット解析の状態機械。
// scanning: ヘッダ行を探している / capturing: 直前のヘッダの値を継続行から捕捉している
type parseState int

const (
	stateScanning parseState = iota
	stateCapturing
)

// captureMode 継続行の捕捉方法
type captureMode int

const (
	// captureMultiline 次のヘッダ行まで全行を捕捉する（SUMMARY / DESCRIPTION / DETAILS）
	captureMultiline captureMode = iota
	// captureSingle 空行をスキップして最初の非空行のみを捕捉する（CATEGORY / FLYER_n_URL）
	captureSingle
)

// Parse プレーンテキスト化済みの説明文からミニフォーマットを抽出する。
// 未知のキーや不正なフライヤーインデックスは無視する（前方互換）。
// 同じキーが複数回現れた場合は後の値が勝つ
func Parse(raw string) Parsed {
	plain := ToPlainText(raw)
	lines := strings.Split(plain, "\n")

	var summary, body, categoryRaw string
	flyers := make(map[int]string)

	state := stateScanning
	var mode captureMode
	var assign func(string)
	var buffer []string

	// flush 捕捉中の値を確定してscanningに戻る
	flush := func() {
		if state != stateCapturing {
			return
		}
		if mode == captureMultiline {
			assign(strings.TrimSpace(strings.Join(buffer, "\n")))
		} else {
			// 単一値キーは値が見つからないまま終端した
			assign("")
		}
		state = stateScanning
		buffer = nil
	}

	// targetFor 認識済みキーの格納先と捕捉方法を返す
	targetFor := func(key string) (func(string), captureMode, bool) {
		switch key {
		case "SUMMARY":
			return func(v string) { summary = v }, captureMultiline, true
		case "DESCRIPTION", "DETAILS": // DETAILSは旧形式の別名
			return func(v string) { body = v }, captureMultiline, true
		case "CATEGORY":
			return func(v string) { categoryRaw = v }, captureSingle, true
		}
		if m := flyerKeyRe.FindStringSubmatch(key); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 {
				return nil, 0, false
			}
			return func(v string) {
				if url := normalizeURL(normalizeValue(v)); url != "" {
					flyers[n] = url
				}
			}, captureSingle, true
		}
		return nil, 0, false
	}

	for _, line := range lines {
		if m := headerRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			// ヘッダ行は（未知キーでも）直前の捕捉を終了させる
			flush()

			key := strings.ToUpper(m[1])
			rest := strings.TrimSpace(m[2])
			target, nextMode, recognized := targetFor(key)
			if !recognized {
				continue
			}
			if rest != "" {
				// インライン値が全体の値になる
				target(rest)
				continue
			}
			state = stateCapturing
			mode = nextMode
			assign = target
			continue
		}

		if state != stateCapturing {
			// 認識済みキーの外にある自由記述は無視する
			continue
		}
		if mode == captureMultiline {
			// 内部の空行と改行は保持する
			buffer = append(buffer, line)
			continue
		}
		if v := strings.TrimSpace(line); v != "" {
			assign(v)
			state = stateScanning
		}
	}
	flush()

	summary = normalizeValue(summary)
	body = normalizeValue(body)

	var combined string
	switch {
	case summary != "" && body != "":
		combined = summary + "\n\n" + body
	case summary != "":
		combined = summary
	default:
		combined = body
	}

	category := domain.ParseCategory(strings.ToUpper(normalizeValue(categoryRaw)))

	// フライヤーURLは数値インデックスの昇順（出現順ではない）
	indexes := make([]int, 0, len(flyers))
	for n := range flyers {
		indexes = append(indexes, n)
	}
	sort.Ints(indexes)
	flyerURLs := make([]string, 0, len(flyers))
	for _, n := range indexes {
		flyerURLs = append(flyerURLs, flyers[n])
	}

	return Parsed{
		Description: strings.TrimRight(combined, " \t\r\n"),
		Category:    category,
		FlyerURLs:   flyerURLs,
	}
}

// normalizeValue 空白除去後に空または "N/A"（大文字小文字を区別しない）なら空文字を返す
func normalizeValue(v string) string {
	t := strings.TrimSpace(v)
	if t == "" || strings.EqualFold(t, "N/A") {
		return ""
	}
	return t
}

// normalizeURL https以外のURLは不正として空文字を返す（代替値は設定しない）
func normalizeURL(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(v), "https://") {
		return ""
	}
	return v
}
