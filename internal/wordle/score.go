package wordle

import (
	"fmt"
	"regexp"
	"strings"
)

// TileState 1文字分の判定結果
type TileState string

const (
	TileCorrect TileState = "correct"
	TilePresent TileState = "present"
	TileAbsent  TileState = "absent"
)

// WordLength 単語の固定長
const WordLength = 5

var validWordRe = regexp.MustCompile(`^[A-Z]{5}$`)

// ScoreGuess 推測と正解を比較し、5文字分の判定結果を返す。
// 1パス目で位置一致（correct）を確定し、一致しなかった正解側の文字を頻度カウントする。
// 2パス目で頻度の残数がある文字だけをpresentにし、残数を減らす。
// 同じ文字が推測側に正解より多く現れる場合、この2パス構成でないと判定を誤る
func ScoreGuess(guess, answer string) ([]TileState, error) {
	g := strings.ToUpper(guess)
	a := strings.ToUpper(answer)
	if !validWordRe.MatchString(g) {
		return nil, fmt.Errorf("推測は英字%d文字である必要があります: %q", WordLength, guess)
	}
	if !validWordRe.MatchString(a) {
		return nil, fmt.Errorf("正解は英字%d文字である必要があります: %q", WordLength, answer)
	}

	result := make([]TileState, WordLength)
	remaining := make(map[byte]int)

	for i := 0; i < WordLength; i++ {
		if g[i] == a[i] {
			result[i] = TileCorrect
		} else {
			result[i] = TileAbsent
			remaining[a[i]]++
		}
	}

	for i := 0; i < WordLength; i++ {
		if result[i] == TileCorrect {
			continue
		}
		if remaining[g[i]] > 0 {
			result[i] = TilePresent
			remaining[g[i]]--
		}
	}

	return result, nil
}

// BetterLetterState 観測済みの状態と新しい状態のうち強い方を返す。
// 強さの順序は correct > present > absent。
// 一度correctになった文字は以降の推測で降格しない
func BetterLetterState(prev, next TileState) TileState {
	if prev == "" {
		return next
	}
	if prev == TileCorrect {
		return prev
	}
	if next == TileCorrect {
		return next
	}
	if prev == TilePresent || next == TilePresent {
		return TilePresent
	}
	return TileAbsent
}

// LetterBoard セッション内の文字ごとの既知最良状態。
// セッション（1日・1プレイヤー）単位で保持し、共有しない
type LetterBoard map[byte]TileState

// Apply 判定済みの推測1回分を反映する
func (b LetterBoard) Apply(guess string, scored []TileState) {
	g := strings.ToUpper(guess)
	for i := 0; i < len(g) && i < len(scored); i++ {
		b[g[i]] = BetterLetterState(b[g[i]], scored[i])
	}
}
