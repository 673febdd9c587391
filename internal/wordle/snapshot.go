package wordle

import (
	"encoding/json"
	"strings"
)

// GameState 1日分のゲームの進行状態
type GameState string

const (
	GamePlaying GameState = "playing"
	GameWon     GameState = "won"
	GameLost    GameState = "lost"
)

// MaxGuesses 1日の推測回数上限
const MaxGuesses = 6

// Snapshot 永続化される1日分のゲーム状態
type Snapshot struct {
	Guesses []string  `json:"guesses"`
	State   GameState `json:"state"`
}

// NormalizeGuess 入力を大文字化し、英字以外を除去して5文字以内に切り詰める
func NormalizeGuess(v string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(v) {
		if r < 'A' || r > 'Z' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == WordLength {
			break
		}
	}
	return b.String()
}

// ParseSnapshot 保存済みのゲーム状態を復元する。
// 壊れた入力はエラーにせず初期状態（推測なし・playing）として扱う
func ParseSnapshot(raw string) Snapshot {
	empty := Snapshot{Guesses: []string{}, State: GamePlaying}
	if raw == "" {
		return empty
	}

	var decoded struct {
		Guesses []any  `json:"guesses"`
		State   string `json:"state"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return empty
	}

	guesses := make([]string, 0, MaxGuesses)
	for _, g := range decoded.Guesses {
		v, ok := g.(string)
		if !ok {
			continue
		}
		normalized := NormalizeGuess(v)
		if len(normalized) != WordLength {
			continue
		}
		if len(guesses) == MaxGuesses {
			break
		}
		guesses = append(guesses, normalized)
	}

	state := GamePlaying
	if decoded.State == string(GameWon) || decoded.State == string(GameLost) {
		state = GameState(decoded.State)
	}

	return Snapshot{Guesses: guesses, State: state}
}
