package wizard

import (
	"testing"

	"github.com/miracura/booking_widget/internal/model"
	"github.com/stretchr/testify/assert"
)

func kinds(steps []Step) []StepKind {
	out := make([]StepKind, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Kind)
	}
	return out
}

func TestDetermineSteps(t *testing.T) {
	single := &model.Service{ID: "svc", ReservationMethods: []model.ReservationMethod{model.MethodStandard}}
	multi := &model.Service{ID: "svc", ReservationMethods: []model.ReservationMethod{
		model.MethodStandard, model.MethodOrder, model.MethodSpecificProvider,
	}}

	tests := []struct {
		name       string
		svc        *model.Service
		method     model.ReservationMethod
		isMultiDay bool
		want       []StepKind
	}{
		{"nil service", nil, "", false, []StepKind{StepReview}},
		{"single method no selection", single, "", false, []StepKind{StepReview}},
		{"single method standard", single, model.MethodStandard, false, []StepKind{StepDatetime, StepReview}},
		{"multi method no selection", multi, "", false, []StepKind{StepMethod, StepReview}},
		{"multi method standard", multi, model.MethodStandard, false, []StepKind{StepMethod, StepDatetime, StepReview}},
		{"multi method order skips datetime", multi, model.MethodOrder, false, []StepKind{StepMethod, StepReview}},
		{"specific adds provider", multi, model.MethodSpecificProvider, false, []StepKind{StepMethod, StepProvider, StepDatetime, StepReview}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineSteps(tt.svc, tt.method, tt.isMultiDay)
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestDetermineStepsMultiDayLabel(t *testing.T) {
	svc := &model.Service{ID: "svc", ReservationMethods: []model.ReservationMethod{model.MethodStandard}}

	steps := DetermineSteps(svc, model.MethodStandard, true)
	assert.Equal(t, "Choose Date Range", steps[0].Label)

	steps = DetermineSteps(svc, model.MethodStandard, false)
	assert.Equal(t, "Choose Date & Time", steps[0].Label)
}

func TestDetermineStepsIdempotent(t *testing.T) {
	svc := &model.Service{ID: "svc", ReservationMethods: []model.ReservationMethod{
		model.MethodStandard, model.MethodSpecificProvider,
	}}

	first := DetermineSteps(svc, model.MethodSpecificProvider, false)
	second := DetermineSteps(svc, model.MethodSpecificProvider, false)
	assert.Equal(t, first, second)
}

func TestDecideMethodNavigation(t *testing.T) {
	tests := []struct {
		name      string
		method    model.ReservationMethod
		advance   bool
		providers int
		want      NavIntent
	}{
		{"no advance stays", model.MethodStandard, false, 0, NavStay},
		{"order jumps to review", model.MethodOrder, true, 0, NavToReview},
		{"standard jumps to datetime", model.MethodStandard, true, 0, NavToDatetime},
		{"specific sole provider skips step", model.MethodSpecificProvider, true, 1, NavToDatetime},
		{"specific many providers next", model.MethodSpecificProvider, true, 2, NavNext},
		{"specific no providers next", model.MethodSpecificProvider, true, 0, NavNext},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decideMethodNavigation(tt.method, tt.advance, tt.providers))
		})
	}
}
