package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Canonical short status messages used across the app.
const (
	MsgLoading          = "جارٍ التحميل…"
	MsgLinkCopied       = "تم نسخ الرابط"
	MsgBookmarkAdded    = "تمت إضافة الإشارة المرجعية"
	MsgBookmarkRemoved  = "تمت إزالة الإشارة المرجعية"
	MsgBookmarksOff     = "الإشارات المرجعية غير متاحة"
	MsgNoFile           = "لا يوجد ملف مرفق"
	MsgOpening          = "جارٍ الفتح…"
	MsgOpened           = "تم الفتح"
	MsgFiltersCleared   = "تم مسح الفلاتر"
	MsgNoMatches        = "لا توجد نتائج"
	MsgUnknownLocation  = "عنوان غير معروف"
	statusDefaultExpiry = 3 * time.Second
)

// MsgResultsCount reports how many items a listing holds, with digit grouping.
func MsgResultsCount(shown, total int) string {
	if total > shown {
		return fmt.Sprintf("%s من %s", humanize.Comma(int64(shown)), humanize.Comma(int64(total)))
	}
	return humanize.Comma(int64(shown))
}

func MsgMatches(n int) string {
	if n == 1 {
		return "نتيجة واحدة"
	}
	return fmt.Sprintf("%d نتائج", n)
}

type clearStatusMsg struct {
	seq int
}

// setStatus shows text in the status bar. A positive ttl clears it again
// unless a newer status replaced it first.
func (a *App) setStatus(text string, kind StatusKind, ttl time.Duration) tea.Cmd {
	a.statusSeq++
	a.status = text
	a.statusKind = kind
	if ttl <= 0 {
		return nil
	}
	seq := a.statusSeq
	return tea.Tick(ttl, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (a *App) clearStatus(seq int) {
	if seq == a.statusSeq {
		a.status = ""
		a.statusKind = StatusInfo
	}
}
