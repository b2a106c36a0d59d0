package main

import (
	"fmt"
	"os"
	"time"

	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/render"
)

func main() {
	// Создаем тестовые данные
	now := time.Now()
	month := calendar.FirstOfMonth(now)
	days := calendar.BuildMonthGrid(month)

	// Доступны будни второй и третьей недели месяца
	available := make(map[string]bool)
	for d := 8; d <= 19; d++ {
		date := time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, month.Location())
		if date.Weekday() != time.Saturday && date.Weekday() != time.Sunday {
			available[date.Format("2006-01-02")] = true
		}
	}
	days = calendar.ApplyAvailability(days, available)

	hl := render.Highlight{
		StartDate: time.Date(month.Year(), month.Month(), 10, 0, 0, 0, 0, month.Location()).Format("2006-01-02"),
		EndDate:   time.Date(month.Year(), month.Month(), 15, 0, 0, 0, 0, month.Location()).Format("2006-01-02"),
	}

	// Генерируем изображение
	imageData, err := render.GenerateMonthImage(month, days, hl)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	// Сохраняем в файл
	filename := "month.png"
	err = os.WriteFile(filename, imageData, 0644)
	if err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Месяц: %s\n", calendar.MonthTitle(month))
	fmt.Printf("📊 Доступных дней: %d\n", len(available))
}
