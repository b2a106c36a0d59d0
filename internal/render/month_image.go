package render

import (
	"bytes"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth     = 980
	imageHeight    = 760
	headerHeight   = 90
	weekdayRowH    = 50
	cellPadding    = 6.0
	cellRadius     = 8.0
	daysPerWeek    = 7
	legendHeight   = 50
	dayLabelOffset = 14.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	titleColor       = color.RGBA{80, 85, 90, 220}
	weekdayColor     = color.RGBA{110, 115, 120, 200}
	dayTextColor     = color.RGBA{20, 24, 28, 230}
	mutedTextColor   = color.RGBA{150, 155, 160, 200}
	availableColor   = color.RGBA{133, 193, 85, 220}
	selectedColor    = color.RGBA{255, 182, 193, 255}
	rangeColor       = color.NRGBA{255, 182, 193, 120}
	todayRingColor   = color.NRGBA{255, 99, 71, 200}
	blankCellColor   = color.NRGBA{240, 240, 240, 255}
	dayCellColor     = color.NRGBA{255, 255, 255, 255}
	legendTextColor  = color.RGBA{90, 95, 100, 220}
	selectedDayColor = color.RGBA{120, 40, 50, 255}
)

// Highlight выделение дат на сетке месяца.
type Highlight struct {
	SelectedDate string // ISO-дата одиночного выбора
	StartDate    string // границы диапазона, обе включительно
	EndDate      string
}

// GenerateMonthImage рисует сетку месяца с доступными, выбранными и
// диапазонными днями и возвращает PNG.
func GenerateMonthImage(month time.Time, days []model.CalendarCell, hl Highlight) ([]byte, error) {
	dc := createCanvas()

	drawHeader(dc, month)
	drawWeekdayRow(dc)
	drawCells(dc, days, hl)
	drawLegend(dc)

	return encodeImage(dc)
}

// createCanvas создаёт контекст рисования с фоном.
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с названием месяца и годом.
func drawHeader(dc *gg.Context, month time.Time) {
	dc.SetColor(titleColor)
	dc.DrawStringAnchored(calendar.MonthTitle(month), imageWidth/2, headerHeight/2, 0.5, 0.5)
}

// drawWeekdayRow рисует строку сокращённых названий дней недели.
func drawWeekdayRow(dc *gg.Context) {
	dc.SetColor(weekdayColor)
	cellW := float64(imageWidth) / daysPerWeek
	y := float64(headerHeight) + weekdayRowH/2
	for i, wd := range calendar.Weekdays {
		x := float64(i)*cellW + cellW/2
		dc.DrawStringAnchored(wd, x, y, 0.5, 0.5)
	}
}

// drawCells рисует ячейки сетки. Сетка всегда кратна неделе, пустые
// ячейки выравнивания рисуются приглушённо.
func drawCells(dc *gg.Context, days []model.CalendarCell, hl Highlight) {
	cellW := float64(imageWidth) / daysPerWeek
	rows := len(days) / daysPerWeek
	if rows == 0 {
		return
	}
	gridH := float64(imageHeight - headerHeight - weekdayRowH - legendHeight)
	cellH := gridH / float64(rows)

	today := time.Now().Format("2006-01-02")

	for i, cell := range days {
		col := i % daysPerWeek
		row := i / daysPerWeek
		x := float64(col)*cellW + cellPadding
		y := float64(headerHeight+weekdayRowH) + float64(row)*cellH + cellPadding
		w := cellW - 2*cellPadding
		h := cellH - 2*cellPadding

		dc.SetColor(cellFill(cell, hl))
		dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
		dc.Fill()

		if cell.Blank {
			continue
		}
		iso := cell.ISODate()

		if iso == today {
			dc.SetColor(todayRingColor)
			dc.SetLineWidth(2)
			dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
			dc.Stroke()
		}

		if cell.Available {
			dc.SetColor(dayTextColor)
		} else {
			dc.SetColor(mutedTextColor)
		}
		if isSelected(iso, hl) {
			dc.SetColor(selectedDayColor)
		}
		dc.DrawStringAnchored(cell.Date.Format("2"), x+dayLabelOffset, y+dayLabelOffset, 0.5, 0.5)
	}
}

// cellFill выбирает заливку ячейки по её состоянию.
func cellFill(cell model.CalendarCell, hl Highlight) color.Color {
	if cell.Blank {
		return blankCellColor
	}
	iso := cell.ISODate()
	switch {
	case isSelected(iso, hl):
		return selectedColor
	case inRange(iso, hl):
		return rangeColor
	case cell.Available:
		return availableColor
	default:
		return dayCellColor
	}
}

// isSelected истинно для одиночного выбора и границ диапазона.
func isSelected(iso string, hl Highlight) bool {
	if iso == "" {
		return false
	}
	return iso == hl.SelectedDate || iso == hl.StartDate || iso == hl.EndDate
}

// inRange истинно для дней строго внутри диапазона.
// ISO-даты сравниваются лексикографически.
func inRange(iso string, hl Highlight) bool {
	if hl.StartDate == "" || hl.EndDate == "" || iso == "" {
		return false
	}
	return hl.StartDate < iso && iso < hl.EndDate
}

// drawLegend рисует легенду в нижней полосе.
func drawLegend(dc *gg.Context) {
	items := []struct {
		label string
		color color.Color
	}{
		{"Available", availableColor},
		{"Selected", selectedColor},
		{"Unavailable", dayCellColor},
	}

	y := float64(imageHeight - legendHeight/2)
	x := 30.0
	for _, item := range items {
		dc.SetColor(item.color)
		dc.DrawRoundedRectangle(x, y-7, 14, 14, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.label, x+22, y, 0, 0.5)
		w, _ := dc.MeasureString(item.label)
		x += 22 + w + 40
	}
}

// encodeImage кодирует контекст в PNG.
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
