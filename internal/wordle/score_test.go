package wordle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreGuess(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		answer   string
		expected []TileState
	}{
		{
			name:     "全文字一致",
			guess:    "MUIRS",
			answer:   "MUIRS",
			expected: []TileState{TileCorrect, TileCorrect, TileCorrect, TileCorrect, TileCorrect},
		},
		{
			name:     "一致なし",
			guess:    "ABCDE",
			answer:   "FGHIJ",
			expected: []TileState{TileAbsent, TileAbsent, TileAbsent, TileAbsent, TileAbsent},
		},
		{
			name:   "重複文字は正解側の残数分だけpresentになる",
			guess:  "SPEED",
			answer: "ERASE",
			// 正解のEは2つなので、推測の2つのEは両方present
			expected: []TileState{TilePresent, TileAbsent, TilePresent, TilePresent, TileAbsent},
		},
		{
			name:   "推測側に正解より多い文字がある場合",
			guess:  "EERIE",
			answer: "OLDER",
			// 正解のEは1つだけなので、3つのEのうちpresentは先頭の1つだけ
			expected: []TileState{TilePresent, TileAbsent, TilePresent, TileAbsent, TileAbsent},
		},
		{
			name:   "位置一致が優先され残数から除外される",
			guess:  "WEEKS",
			answer: "WEEDS",
			// 2文字目のEがcorrectで消費されるため、3文字目のEは正解側の残りのEとpresent一致
			expected: []TileState{TileCorrect, TileCorrect, TileCorrect, TileAbsent, TileCorrect},
		},
		{
			name:     "小文字の入力も受け付ける",
			guess:    "spark",
			answer:   "SPARK",
			expected: []TileState{TileCorrect, TileCorrect, TileCorrect, TileCorrect, TileCorrect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScoreGuess(tt.guess, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScoreGuess_InvalidInput(t *testing.T) {
	t.Run("異常系: 推測の文字数が不正", func(t *testing.T) {
		_, err := ScoreGuess("ABCD", "MUIRS")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "推測は英字5文字である必要があります")
	})

	t.Run("異常系: 推測に英字以外が含まれる", func(t *testing.T) {
		_, err := ScoreGuess("AB3DE", "MUIRS")
		assert.Error(t, err)
	})

	t.Run("異常系: 正解が不正", func(t *testing.T) {
		_, err := ScoreGuess("MUIRS", "TOOLONGWORD")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "正解は英字5文字である必要があります")
	})
}

func TestBetterLetterState(t *testing.T) {
	t.Run("未観測の文字は新しい状態になる", func(t *testing.T) {
		assert.Equal(t, TileAbsent, BetterLetterState("", TileAbsent))
		assert.Equal(t, TilePresent, BetterLetterState("", TilePresent))
		assert.Equal(t, TileCorrect, BetterLetterState("", TileCorrect))
	})

	t.Run("correctは降格しない", func(t *testing.T) {
		assert.Equal(t, TileCorrect, BetterLetterState(TileCorrect, TilePresent))
		assert.Equal(t, TileCorrect, BetterLetterState(TileCorrect, TileAbsent))
	})

	t.Run("presentはabsentに降格しない", func(t *testing.T) {
		assert.Equal(t, TilePresent, BetterLetterState(TilePresent, TileAbsent))
		assert.Equal(t, TilePresent, BetterLetterState(TileAbsent, TilePresent))
	})

	t.Run("昇格は常に許される", func(t *testing.T) {
		assert.Equal(t, TileCorrect, BetterLetterState(TilePresent, TileCorrect))
		assert.Equal(t, TileCorrect, BetterLetterState(TileAbsent, TileCorrect))
	})
}

func TestLetterBoard_Apply(t *testing.T) {
	board := LetterBoard{}

	scored, err := ScoreGuess("SPEED", "ERASE")
	require.NoError(t, err)
	board.Apply("SPEED", scored)

	assert.Equal(t, TilePresent, board['S'])
	assert.Equal(t, TileAbsent, board['P'])
	assert.Equal(t, TilePresent, board['E'])
	assert.Equal(t, TileAbsent, board['D'])

	// 同じ文字がcorrectになったら以降の推測でも維持される
	scored, err = ScoreGuess("SERVE", "ERASE")
	require.NoError(t, err)
	board.Apply("SERVE", scored)
	assert.Equal(t, TileCorrect, board['E'])

	scored, err = ScoreGuess("DODGE", "ERASE")
	require.NoError(t, err)
	board.Apply("DODGE", scored)
	assert.Equal(t, TileCorrect, board['E'])
}
