package listing

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var arabicMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "الآن", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s دقيقة", DivBy: 1},
	{D: time.Hour, Format: "%s %d دقائق", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s ساعة", DivBy: 1},
	{D: humanize.Day, Format: "%s %d ساعات", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s يوم", DivBy: 1},
	{D: humanize.Week, Format: "%s %d أيام", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "%s أسبوع", DivBy: 1},
	{D: humanize.Month, Format: "%s %d أسابيع", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "%s شهر", DivBy: 1},
	{D: humanize.Year, Format: "%s %d أشهر", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "%s سنة", DivBy: 1},
	{D: humanize.LongTime, Format: "%s %d سنوات", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%s زمن طويل", DivBy: 1},
}

// RelativeDate renders t relative to now in Arabic, e.g. "منذ 3 أيام".
func RelativeDate(t, now time.Time) string {
	return humanize.CustomRelTime(t, now, "منذ", "بعد", arabicMagnitudes)
}

// AbsoluteDate renders t as "05 نوفمبر 2023".
func AbsoluteDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
}
