package view

import (
	"strings"
)

// window — разобранное окно доставки вида "10:00-12:00"
type window struct {
	start   string // "HH:MM", сравнивается лексикографически (24h, с ведущими нулями)
	minutes int    // длительность окна в минутах
}

// parseWindow разбирает строку окна доставки "HH:MM-HH:MM"
// возвращает false для строк, не соответствующих формату
func parseWindow(s string) (window, bool) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return window{}, false
	}

	startMin, ok := parseClock(start)
	if !ok {
		return window{}, false
	}
	endMin, ok := parseClock(end)
	if !ok {
		return window{}, false
	}

	return window{start: start, minutes: endMin - startMin}, true
}

// parseClock переводит "HH:MM" в минуты от полуночи
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, false
	}

	hours, ok := parseTwoDigits(h)
	if !ok || hours > 23 {
		return 0, false
	}
	minutes, ok := parseTwoDigits(m)
	if !ok || minutes > 59 {
		return 0, false
	}

	return hours*60 + minutes, true
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
