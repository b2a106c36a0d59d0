package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/miracura/booking_widget/internal/api"
	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/model"
	"github.com/miracura/booking_widget/internal/repository"
	"go.uber.org/zap"
)

// API часть REST-клиента, нужная мастеру бронирования.
type API interface {
	AvailableSlots(ctx context.Context, q api.SlotQuery) ([]api.SlotWindow, error)
	Providers(ctx context.Context, serviceID string, limit int) ([]model.Provider, error)
	CreateReservation(ctx context.Context, token string, req api.ReservationRequest) (*api.ReservationResult, error)
	UpdateProfilePhone(ctx context.Context, token, phoneNumber string) error
	ConfirmPhoneNumber(ctx context.Context, token, phoneNumber, code string) error
}

// TokenProvider выдаёт гостевой токен для авторизованных запросов.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Result результат действия с вводом-выводом: UI ветвится по Success,
// не разбирая ошибки.
type Result struct {
	Success bool
	Error   string
}

func ok() Result {
	return Result{Success: true}
}

func fail(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Options настройки стора.
type Options struct {
	BusinessID string
	Locale     string
	DeviceZone string // пояс устройства, подбирается ближайший кураторский
}

// Store состояние мастера бронирования: последовательность шагов,
// календарь, выбор слота, корзина частей и подтверждение телефона.
// Все методы потокобезопасны.
type Store struct {
	mu sync.Mutex

	api    API
	tokens TokenProvider
	repo   *repository.CartRepository
	logger *zap.Logger

	businessID string
	locale     string

	// Конфигурация услуги
	service    *model.Service
	isMultiDay bool

	// Шаги
	currentStep int // 1-базный индекс в steps
	steps       []Step

	// Выбор
	selectedMethod   model.ReservationMethod
	selectedProvider *model.Provider
	providers        []model.Provider
	selectedDate     string // ISO-дата, "" = не выбрана
	startDate        string
	endDate          string
	slots            []model.Slot
	selectedSlot     *model.Slot

	// Календарь
	current  time.Time // первое число отображаемого месяца
	days     []model.CalendarCell
	timezone string
	loc      *time.Location

	// Корзина и подпроцессы
	parts   []model.ReservationCartPart
	phone   model.PhoneVerification
	loading bool

	// Счётчик поколений: ответ устаревшего запроса отбрасывается
	fetchGen uint64
}

// NewStore создаёт стор мастера бронирования.
func NewStore(apiClient API, tokens TokenProvider, repo *repository.CartRepository, opts Options, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	zone := calendar.ResolveTimeZone(opts.DeviceZone)
	loc, err := time.LoadLocation(zone)
	if err != nil {
		logger.Warn("Unknown time zone, falling back to UTC", zap.String("zone", zone))
		zone = "UTC"
		loc = time.UTC
	}

	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}

	s := &Store{
		api:         apiClient,
		tokens:      tokens,
		repo:        repo,
		logger:      logger,
		businessID:  opts.BusinessID,
		locale:      locale,
		timezone:    zone,
		loc:         loc,
		currentStep: 1,
		steps:       DetermineSteps(nil, "", false),
		parts:       []model.ReservationCartPart{},
		phone:       model.PhoneVerification{State: model.VerificationIdle},
	}
	s.current = calendar.FirstOfMonth(time.Now().In(loc))
	s.days = calendar.BuildMonthGrid(s.current)
	return s
}

// Init подгружает сохранённую корзину. Единственное чтение из хранилища:
// дальше авторитетна копия в памяти, хранилище только перезаписывается.
func (s *Store) Init(ctx context.Context) error {
	parts, err := s.repo.LoadParts(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	s.mu.Lock()
	s.parts = parts
	s.mu.Unlock()

	s.logger.Info("Reservation cart restored", zap.Int("parts", len(parts)))
	return nil
}

// State снимок состояния для UI и тестов.
type State struct {
	CurrentStep      int
	TotalSteps       int
	Steps            []Step
	SelectedMethod   model.ReservationMethod
	SelectedProvider *model.Provider
	Providers        []model.Provider
	IsMultiDay       bool
	SelectedDate     string
	StartDate        string
	EndDate          string
	Slots            []model.Slot
	SelectedSlot     *model.Slot
	Days             []model.CalendarCell
	MonthTitle       string
	CurrentMonth     time.Time
	TimeZone         string
	Loading          bool
	Parts            []model.ReservationCartPart
	Phone            model.PhoneVerification
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := State{
		CurrentStep:    s.currentStep,
		TotalSteps:     len(s.steps),
		Steps:          append([]Step(nil), s.steps...),
		SelectedMethod: s.selectedMethod,
		Providers:      append([]model.Provider(nil), s.providers...),
		IsMultiDay:     s.isMultiDay,
		SelectedDate:   s.selectedDate,
		StartDate:      s.startDate,
		EndDate:        s.endDate,
		Slots:          append([]model.Slot(nil), s.slots...),
		Days:           append([]model.CalendarCell(nil), s.days...),
		MonthTitle:     calendar.MonthTitle(s.current),
		CurrentMonth:   s.current,
		TimeZone:       s.timezone,
		Loading:        s.loading,
		Parts:          append([]model.ReservationCartPart(nil), s.parts...),
		Phone:          s.phone,
	}
	if s.selectedProvider != nil {
		p := *s.selectedProvider
		st.SelectedProvider = &p
	}
	if s.selectedSlot != nil {
		sl := *s.selectedSlot
		st.SelectedSlot = &sl
	}
	return st
}

// currentStepKindLocked возвращает вид текущего шага.
func (s *Store) currentStepKindLocked() StepKind {
	if s.currentStep < 1 || s.currentStep > len(s.steps) {
		return ""
	}
	return s.steps[s.currentStep-1].Kind
}

// CurrentStepKind возвращает вид текущего шага.
func (s *Store) CurrentStepKind() StepKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStepKindLocked()
}

// CanProceed проверяет, выбрано ли всё обязательное для текущего шага.
func (s *Store) CanProceed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canProceedLocked()
}

func (s *Store) canProceedLocked() bool {
	switch s.currentStepKindLocked() {
	case StepMethod:
		return s.selectedMethod != ""
	case StepProvider:
		return s.selectedProvider != nil
	case StepDatetime:
		if s.isMultiDay {
			return s.startDate != "" && s.endDate != "" && s.selectedSlot != nil
		}
		return s.selectedDate != "" && s.selectedSlot != nil
	case StepReview:
		return true
	default:
		return false
	}
}

// determineStepsLocked пересобирает список шагов и зажимает текущий шаг,
// если он вышел за новый предел. Вызывается после каждой смены
// услуги или метода.
func (s *Store) determineStepsLocked() {
	s.steps = DetermineSteps(s.service, s.selectedMethod, s.isMultiDay)
	if s.currentStep > len(s.steps) {
		s.currentStep = len(s.steps)
	}
	if s.currentStep < 1 {
		s.currentStep = 1
	}
}

// stepIndexLocked возвращает 1-базный номер шага по виду.
func (s *Store) stepIndexLocked(kind StepKind) (int, bool) {
	for i, st := range s.steps {
		if st.Kind == kind {
			return i + 1, true
		}
	}
	return 0, false
}

// SetService загружает услугу: сбрасывает весь выбор, фиксирует режим
// дат, перестраивает сетку текущего месяца и пересчитывает шаги.
// Единственный метод бронирования выбирается сразу, без участия
// пользователя.
func (s *Store) SetService(ctx context.Context, svc *model.Service) {
	s.mu.Lock()

	s.service = svc
	s.selectedMethod = ""
	s.selectedProvider = nil
	s.providers = nil
	s.selectedDate = ""
	s.startDate = ""
	s.endDate = ""
	s.slots = nil
	s.selectedSlot = nil
	s.currentStep = 1
	s.isMultiDay = svc != nil && svc.ReservationConfigs.IsMultiDay
	s.fetchGen++

	s.current = calendar.FirstOfMonth(time.Now().In(s.loc))
	s.days = calendar.BuildMonthGrid(s.current)

	var autoMethod model.ReservationMethod
	if svc != nil && len(svc.ReservationMethods) == 1 {
		autoMethod = svc.ReservationMethods[0]
		s.selectedMethod = autoMethod
	}
	s.determineStepsLocked()
	s.mu.Unlock()

	if autoMethod != "" {
		// Шаг выбора метода отсутствует в списке, выбор прозрачный
		s.SelectMethod(ctx, autoMethod, false)
	}

	s.fetchAvailability(ctx, FetchMonth, "")
}

// NextStep переходит на следующий шаг, если текущий заполнен.
// Недопустимый переход — тихий no-op.
func (s *Store) NextStep(ctx context.Context) {
	s.mu.Lock()
	if s.currentStep >= len(s.steps) || !s.canProceedLocked() {
		s.mu.Unlock()
		return
	}

	s.currentStep++
	entering := s.currentStepKindLocked()
	needFirst := s.selectedDate == "" && s.startDate == ""
	s.mu.Unlock()

	if entering == StepDatetime {
		s.fetchAvailability(ctx, FetchMonth, "")
		if needFirst {
			s.fetchAvailability(ctx, FetchFirst, "")
		}
	}
}

// PrevStep возвращается на шаг назад, очищая состояние покидаемого шага.
func (s *Store) PrevStep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentStep <= 1 {
		return
	}
	s.clearStepStateLocked(s.currentStepKindLocked())
	s.currentStep--
}

// GoToStep переходит на произвольный шаг. Переход назад очищает
// состояние всех шагов строго между старой и новой позицией, чтобы
// пользователь не попал на шаг с устаревшим выбором.
func (s *Store) GoToStep(ctx context.Context, step int) {
	s.mu.Lock()
	if step < 1 || step > len(s.steps) {
		s.mu.Unlock()
		return
	}

	if step < s.currentStep {
		for i := s.currentStep; i > step; i-- {
			s.clearStepStateLocked(s.steps[i-1].Kind)
		}
	}
	s.currentStep = step

	entering := s.currentStepKindLocked()
	needFirst := s.selectedDate == "" && s.startDate == ""
	s.mu.Unlock()

	if entering == StepDatetime {
		s.fetchAvailability(ctx, FetchMonth, "")
		if needFirst {
			s.fetchAvailability(ctx, FetchFirst, "")
		}
	}
}

// clearStepStateLocked сбрасывает состояние, принадлежащее шагу.
func (s *Store) clearStepStateLocked(kind StepKind) {
	switch kind {
	case StepMethod:
		s.selectedMethod = ""
	case StepProvider:
		s.selectedProvider = nil
		s.providers = nil
	case StepDatetime:
		s.resetDateSelectionLocked()
	}
}

// resetDateSelectionLocked сбрасывает выбор даты и слота.
func (s *Store) resetDateSelectionLocked() {
	s.selectedDate = ""
	s.startDate = ""
	s.endDate = ""
	s.slots = nil
	s.selectedSlot = nil
	s.fetchGen++
}
