package middleware

import (
	"net/http"
	"net/url"

	"github.com/diewo77/go-todolist/i18n"
)

// Flash levels, matching the CSS classes in the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const (
	flashCookie      = "flash"
	flashLevelCookie = "flash_level"
)

// Flash stores a translated one-shot notice in cookies; the next rendered
// page pops and displays it. code is an i18n message code (or a literal
// when no translation exists).
func Flash(w http.ResponseWriter, r *http.Request, level, code string) {
	msg := i18n.T(LangFrom(r), code)
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(msg), Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: flashLevelCookie, Value: level, Path: "/"})
}

// FlashMessage stores an already-formatted notice (e.g. one carrying a
// task title) without running it through the catalog.
func FlashMessage(w http.ResponseWriter, _ *http.Request, level, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(msg), Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: flashLevelCookie, Value: level, Path: "/"})
}

// PopFlash reads and clears the pending flash notice. Returns empty
// strings when none is pending.
func PopFlash(w http.ResponseWriter, r *http.Request) (level, msg string) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return "", ""
	}
	if decoded, derr := url.QueryUnescape(c.Value); derr == nil {
		msg = decoded
	}
	level = FlashSuccess
	if lc, lerr := r.Cookie(flashLevelCookie); lerr == nil && lc.Value != "" {
		level = lc.Value
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: flashLevelCookie, Value: "", Path: "/", MaxAge: -1})
	return level, msg
}
