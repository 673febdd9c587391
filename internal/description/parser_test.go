package description

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmcw-site/google-calendar-events-api/internal/domain"
)

func TestParse_Minimal(t *testing.T) {
	t.Run("キーなしの自由記述は説明にならない", func(t *testing.T) {
		parsed := Parse("This week we are hosting several events.\nCome join us!")
		assert.Equal(t, "", parsed.Description)
		assert.Equal(t, domain.CategoryOther, parsed.Category)
		assert.Empty(t, parsed.FlyerURLs)
	})

	t.Run("空文字", func(t *testing.T) {
		parsed := Parse("")
		assert.Equal(t, "", parsed.Description)
		assert.Equal(t, domain.CategoryOther, parsed.Category)
		assert.Empty(t, parsed.FlyerURLs)
	})
}

func TestParse_FlyerOrdering(t *testing.T) {
	// フライヤーURLは出現順ではなく数値インデックスの昇順で返る
	input := "SUMMARY: Meeting\nCATEGORY: social\nFLYER_2_URL: https://x/a\nFLYER_1_URL: https://x/b"
	parsed := Parse(input)

	assert.Equal(t, "Meeting", parsed.Description)
	assert.Equal(t, domain.CategorySocial, parsed.Category)
	assert.Equal(t, []string{"https://x/b", "https://x/a"}, parsed.FlyerURLs)
}

func TestParse_FlyerValidation(t *testing.T) {
	t.Run("https以外のURLは除外される", func(t *testing.T) {
		input := "FLYER_1_URL: http://insecure.example/a\nFLYER_2_URL: not-a-url\nFLYER_3_URL: https://ok.example/b"
		parsed := Parse(input)
		assert.Equal(t, []string{"https://ok.example/b"}, parsed.FlyerURLs)
	})

	t.Run("N/Aのフライヤーは除外される", func(t *testing.T) {
		parsed := Parse("FLYER_1_URL: N/A")
		assert.Empty(t, parsed.FlyerURLs)
	})

	t.Run("インデックスが正の整数でないキーは無視される", func(t *testing.T) {
		parsed := Parse("FLYER_0_URL: https://x/a\nFLYER_X_URL: https://x/b")
		assert.Empty(t, parsed.FlyerURLs)
	})

	t.Run("同じインデックスは後の値が勝つ", func(t *testing.T) {
		parsed := Parse("FLYER_1_URL: https://x/old\nFLYER_1_URL: https://x/new")
		assert.Equal(t, []string{"https://x/new"}, parsed.FlyerURLs)
	})
}

func TestParse_MultilineCapture(t *testing.T) {
	t.Run("インライン値が空なら次のヘッダまで複数行を捕捉する", func(t *testing.T) {
		input := "SUMMARY:\nFirst line\n\nThird line\nCATEGORY: WORKSHOP"
		parsed := Parse(input)
		assert.Equal(t, "First line\n\nThird line", parsed.Description)
		assert.Equal(t, domain.CategoryWorkshop, parsed.Category)
	})

	t.Run("SUMMARYとDESCRIPTIONは空行1つで結合される", func(t *testing.T) {
		input := "SUMMARY: Game Night\nDESCRIPTION: Bring your friends.\nSnacks provided?"
		parsed := Parse(input)
		// DESCRIPTIONのインライン値が全体の値になるため、後続の行は無視される
		assert.Equal(t, "Game Night\n\nBring your friends.", parsed.Description)
	})

	t.Run("DETAILSは旧形式の別名として扱われる", func(t *testing.T) {
		parsed := Parse("SUMMARY: A\nDETAILS: B")
		assert.Equal(t, "A\n\nB", parsed.Description)
	})

	t.Run("未知のヘッダ行でも捕捉は終了する", func(t *testing.T) {
		input := "DESCRIPTION:\nbody line\nNOTE: ignored\nmore prose"
		parsed := Parse(input)
		assert.Equal(t, "body line", parsed.Description)
	})
}

func TestParse_SingleValueCapture(t *testing.T) {
	t.Run("CATEGORYは空行をスキップして最初の非空行を値にする", func(t *testing.T) {
		input := "CATEGORY:\n\nSOCIAL\nthis prose is ignored"
		parsed := Parse(input)
		assert.Equal(t, domain.CategorySocial, parsed.Category)
	})

	t.Run("キーの大文字小文字は区別しない", func(t *testing.T) {
		parsed := Parse("summary: hi\ncategory: council_meeting")
		assert.Equal(t, "hi", parsed.Description)
		assert.Equal(t, domain.CategoryCouncilMeeting, parsed.Category)
	})

	t.Run("同じキーが複数回現れたら後の値が勝つ", func(t *testing.T) {
		parsed := Parse("CATEGORY: SOCIAL\nCATEGORY: WORKSHOP")
		assert.Equal(t, domain.CategoryWorkshop, parsed.Category)
	})

	t.Run("未知のカテゴリはOTHERになる", func(t *testing.T) {
		parsed := Parse("CATEGORY: PARTY")
		assert.Equal(t, domain.CategoryOther, parsed.Category)
	})
}

func TestParse_NormalizeValues(t *testing.T) {
	t.Run("N/Aの値は未設定として扱われる", func(t *testing.T) {
		parsed := Parse("SUMMARY: n/a\nDESCRIPTION: Real body")
		assert.Equal(t, "Real body", parsed.Description)
	})

	t.Run("HTML説明文も正規化してから解析する", func(t *testing.T) {
		input := `SUMMARY: Council Meeting<br>CATEGORY: COUNCIL_MEETING<br>FLYER_1_URL: <a href="https://x/flyer.png">flyer</a>`
		parsed := Parse(input)
		assert.Equal(t, "Council Meeting", parsed.Description)
		assert.Equal(t, domain.CategoryCouncilMeeting, parsed.Category)
		assert.Equal(t, []string{"https://x/flyer.png"}, parsed.FlyerURLs)
	})
}
