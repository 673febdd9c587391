package gateway

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
)

var (
	icsDateTimeRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})?$`)
	icsDateRe     = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
)

// parseICSEvents ICS文書をGoogle Calendar APIと同じ中間形式（*calendar.Event）に変換する。
// VEVENTブロック外のプロパティは無視し、STATUSがCANCELLEDのイベントはブロック終端で破棄する
func parseICSEvents(text string) []*calendar.Event {
	lines := unfoldICSLines(text)
	items := make([]*calendar.Event, 0)

	inEvent := false
	var current *calendar.Event
	var status string

	flush := func() {
		if current == nil || current.Id == "" {
			return
		}
		if strings.EqualFold(status, "CANCELLED") {
			return
		}
		items = append(items, current)
	}

	for _, line := range lines {
		if line == "BEGIN:VEVENT" {
			inEvent = true
			current = &calendar.Event{}
			status = ""
			continue
		}
		if line == "END:VEVENT" {
			if inEvent {
				flush()
			}
			inEvent = false
			current = nil
			continue
		}
		if !inEvent {
			continue
		}

		// プロパティ行: NAME[;PARAM=val...]:VALUE
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		left := line[:idx]
		value := unescapeICSValue(line[idx+1:])

		parts := strings.Split(left, ";")
		name := strings.ToUpper(parts[0])
		params := make(map[string]string)
		for _, p := range parts[1:] {
			if eq := strings.Index(p, "="); eq > 0 {
				params[strings.ToUpper(p[:eq])] = p[eq+1:]
			}
		}

		switch name {
		case "UID":
			current.Id = strings.TrimSpace(value)
		case "SUMMARY":
			current.Summary = value
		case "DESCRIPTION":
			current.Description = value
		case "LOCATION":
			current.Location = value
		case "URL":
			current.HtmlLink = strings.TrimSpace(value)
		case "STATUS":
			status = strings.TrimSpace(value)
		case "DTSTART":
			current.Start = parseICSBoundary(value, params)
		case "DTEND":
			current.End = parseICSBoundary(value, params)
		}
	}

	return items
}

// unfoldICSLines 折り返し行を展開する。
// 空白またはタブで始まる継続行は、先頭1文字を除いて直前の論理行に連結する。
// 空の物理行は展開前に除去する
func unfoldICSLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line == "" {
			continue
		}
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// unescapeICSValue エスケープ済みの値をデコードする。
// `\\` のデコードを最後に行う順序は二重処理を避けるために崩せない
func unescapeICSValue(v string) string {
	v = strings.ReplaceAll(v, `\n`, "\n")
	v = strings.ReplaceAll(v, `\N`, "\n")
	v = strings.ReplaceAll(v, `\,`, ",")
	v = strings.ReplaceAll(v, `\;`, ";")
	v = strings.ReplaceAll(v, `\\`, `\`)
	return v
}

// parseICSBoundary DTSTART/DTENDの値を中間形式の境界に変換する。
// VALUE=DATEの場合は日付のみ（終日）として保持する。解析できない場合はnil
func parseICSBoundary(value string, params map[string]string) *calendar.EventDateTime {
	tzid := params["TZID"]
	if strings.EqualFold(params["VALUE"], "DATE") {
		if d, ok := parseICSDate(value); ok {
			return &calendar.EventDateTime{Date: d}
		}
		return nil
	}
	if iso, ok := parseICSDateTime(value, tzid); ok {
		return &calendar.EventDateTime{DateTime: iso, TimeZone: tzid}
	}
	return nil
}

// parseICSDateTime YYYYMMDDThhmmss[Z]形式（秒は省略可）をRFC3339（UTC）に変換する。
// Z付きはそのままUTCの時刻。TZID付きはそのゾーンの壁時計時刻として絶対時刻に解決する。
// TZIDが不明なゾーンの場合はUTC解釈にフォールバックする
func parseICSDateTime(raw, tzid string) (string, bool) {
	v := strings.TrimSpace(raw)
	isUTC := strings.HasSuffix(v, "Z")
	core := strings.TrimSuffix(v, "Z")

	m := icsDateTimeRe.FindStringSubmatch(core)
	if m == nil {
		return "", false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second := 0
	if m[6] != "" {
		second, _ = strconv.Atoi(m[6])
	}

	loc := time.UTC
	if !isUTC && tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	return t.UTC().Format(time.RFC3339), true
}

// parseICSDate YYYYMMDD形式をYYYY-MM-DDに変換する。絶対時刻には変換しない
func parseICSDate(raw string) (string, bool) {
	m := icsDateRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2] + "-" + m[3], true
}
