// Package producer renders report and batch outcomes into the messages the
// bot sends back.
package producer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/minhvu/sothuchi/internal/model"
	"github.com/minhvu/sothuchi/internal/parser"
)

func DayReport(date time.Time, summary *model.Summary) string {
	return fmt.Sprintf("📊 TỔNG KẾT NGÀY %s\n%s",
		date.Format(model.DateLayout), totals(summary))
}

func MonthReport(year int, month time.Month, summary *model.Summary) string {
	return fmt.Sprintf("📅 TỔNG KẾT THÁNG %02d/%d\n%s", int(month), year, totals(summary))
}

func YearReport(report *model.YearReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 BÁO CÁO NĂM %d\n\n", report.Year)
	for m := 1; m <= 12; m++ {
		summary := report.Months[m]
		if summary.Empty() {
			continue
		}
		fmt.Fprintf(&b, "• Tháng %02d: Thu %s | Chi %s | Còn %s\n",
			m, humanize.Comma(summary.Income), humanize.Comma(summary.Expense),
			humanize.Comma(summary.Balance()))
	}
	fmt.Fprintf(&b, "\n%s", totals(&report.Total))
	if report.Best != 0 {
		fmt.Fprintf(&b, "\n\n🏆 Tháng tốt nhất: %02d", report.Best)
	}
	if report.Worst != 0 {
		fmt.Fprintf(&b, "\n🔥 Tháng tốn nhất: %02d", report.Worst)
	}
	return b.String()
}

// BatchOutcome is the reply after recording a message: how many lines were
// written and which raw lines were rejected, so the user can fix them.
func BatchOutcome(written int, rejected []parser.Rejection) string {
	msg := fmt.Sprintf("✅ Ghi thành công: %d dòng", written)
	if len(rejected) > 0 {
		raws := make([]string, len(rejected))
		for i, rejection := range rejected {
			raws[i] = rejection.Raw
		}
		msg += "\n❌ Lỗi:\n" + strings.Join(raws, "\n")
	}
	return msg
}

func totals(summary *model.Summary) string {
	return fmt.Sprintf("💰 Thu: %s\n💸 Chi: %s\n📌 Còn: %s",
		humanize.Comma(summary.Income), humanize.Comma(summary.Expense),
		humanize.Comma(summary.Balance()))
}
