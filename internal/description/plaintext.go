package description

import (
	"regexp"
	"strings"
)

var (
	brTagRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRe = regexp.MustCompile(`(?i)</(div|p|li|tr|h\d)>`)
	listOpenRe   = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	anchorRe     = regexp.MustCompile(`(?is)<a\b[^>]*href="([^"]+)"[^>]*>.*?</a>`)
	anyTagRe     = regexp.MustCompile(`<[^>]+>`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// basicEntities Google Calendarの説明文で実際に出現する基本エンティティのみを対象とする。
// これ以外のエンティティはデコードしない
var basicEntities = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)&nbsp;`), " "},
	{regexp.MustCompile(`(?i)&amp;`), "&"},
	{regexp.MustCompile(`(?i)&lt;`), "<"},
	{regexp.MustCompile(`(?i)&gt;`), ">"},
	{regexp.MustCompile(`(?i)&quot;`), `"`},
	{regexp.MustCompile(`&#39;`), "'"},
}

// ToPlainText HTML断片を含みうる説明文をプレーンテキストに正規化する。
// ミニフォーマット解析（Parse）の前処理として使用する。
// アンカータグは表示テキストではなくhref属性値に置き換える
func ToPlainText(input string) string {
	text := input

	text = brTagRe.ReplaceAllString(text, "\n")
	text = blockCloseRe.ReplaceAllString(text, "\n")
	text = listOpenRe.ReplaceAllString(text, "- ")

	// リンクはhrefを優先して残す
	text = anchorRe.ReplaceAllString(text, "$1")

	// 残りのタグをすべて除去
	text = anyTagRe.ReplaceAllString(text, "")

	for _, e := range basicEntities {
		text = e.re.ReplaceAllString(text, e.replacement)
	}

	// 空白の正規化
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
