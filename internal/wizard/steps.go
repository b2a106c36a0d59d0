package wizard

import "github.com/miracura/booking_widget/internal/model"

// StepKind именованный этап мастера бронирования. Закрытый набор:
// активный список шагов собирается из этих значений по конфигурации услуги.
type StepKind string

const (
	StepMethod   StepKind = "method"
	StepProvider StepKind = "provider"
	StepDatetime StepKind = "datetime"
	StepReview   StepKind = "review"
)

// Step один шаг активного списка.
type Step struct {
	Kind  StepKind `json:"name"`
	Label string   `json:"label"`
}

// DetermineSteps собирает активный список шагов. Чистая функция,
// идемпотентна: одинаковый вход всегда даёт одинаковый список.
//
// Правила:
//   - "method" только если методов два и больше;
//   - "provider" только если выбран метод с конкретным исполнителем;
//   - "datetime" для любого выбранного метода, кроме ORDER;
//   - "review" всегда последний.
func DetermineSteps(svc *model.Service, method model.ReservationMethod, isMultiDay bool) []Step {
	if svc == nil {
		return []Step{{Kind: StepReview, Label: "Review & Confirm"}}
	}

	var steps []Step
	if len(svc.ReservationMethods) > 1 {
		steps = append(steps, Step{Kind: StepMethod, Label: "Choose Reservation Type"})
	}
	if method.IsSpecific() {
		steps = append(steps, Step{Kind: StepProvider, Label: "Choose Provider"})
	}
	if method != "" && method != model.MethodOrder {
		label := "Choose Date & Time"
		if isMultiDay {
			label = "Choose Date Range"
		}
		steps = append(steps, Step{Kind: StepDatetime, Label: label})
	}
	steps = append(steps, Step{Kind: StepReview, Label: "Review & Confirm"})

	return steps
}

// NavIntent намерение навигации после выбора метода. Редьюсер выбора
// метода возвращает намерение, а стор отдельно его исполняет: логика
// пропуска шагов проверяется без побочных эффектов.
type NavIntent int

const (
	NavStay NavIntent = iota
	NavNext
	NavToDatetime
	NavToReview
)

// decideMethodNavigation вычисляет переход после выбора метода.
// providerCount имеет смысл только для SPECIFIC-методов.
func decideMethodNavigation(method model.ReservationMethod, advance bool, providerCount int) NavIntent {
	if !advance {
		return NavStay
	}

	switch {
	case method == model.MethodOrder:
		return NavToReview
	case method.IsSpecific():
		// Единственный исполнитель выбирается автоматически,
		// шаг выбора пропускается
		if providerCount == 1 {
			return NavToDatetime
		}
		return NavNext
	case method == model.MethodStandard:
		return NavToDatetime
	default:
		return NavNext
	}
}
