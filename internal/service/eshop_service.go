package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/miracura/booking_widget/internal/api"
	"github.com/miracura/booking_widget/internal/model"
	"github.com/miracura/booking_widget/internal/repository"
	"go.uber.org/zap"
)

// EshopAPI часть REST-клиента, нужная корзине магазина.
type EshopAPI interface {
	GetBusiness(ctx context.Context) (*model.Business, error)
	CheckoutOrder(ctx context.Context, token string, req api.OrderRequest) (*api.OrderResult, error)
}

// TokenProvider выдаёт гостевой токен.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Result результат действия с вводом-выводом.
type Result struct {
	Success bool
	Error   string
}

// EshopCartService корзина интернет-магазина: строки с товарами,
// сохраняемые между сессиями, и чекаут одним запросом.
// Структурно повторяет корзину бронирований, но без мастера шагов.
type EshopCartService struct {
	mu sync.Mutex

	api    EshopAPI
	tokens TokenProvider
	repo   *repository.CartRepository
	logger *zap.Logger

	businessID     string
	items          []model.EshopCartItem
	checkoutBlocks []model.Block
	processing     bool
}

// NewEshopCartService создаёт сервис корзины магазина.
func NewEshopCartService(apiClient EshopAPI, tokens TokenProvider, repo *repository.CartRepository, businessID string, logger *zap.Logger) *EshopCartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EshopCartService{
		api:        apiClient,
		tokens:     tokens,
		repo:       repo,
		logger:     logger,
		businessID: businessID,
		items:      []model.EshopCartItem{},
	}
}

// Init подгружает сохранённую корзину. Единственное чтение из хранилища.
func (s *EshopCartService) Init(ctx context.Context) error {
	items, err := s.repo.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("load eshop cart: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info("Eshop cart restored", zap.Int("items", len(items)))
	return nil
}

// AddItem добавляет товар в корзину. Существующая строка с тем же
// товаром и вариантом увеличивает количество вместо дублирования.
func (s *EshopCartService) AddItem(ctx context.Context, product model.Product, variant model.ProductVariant, quantity int) Result {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID && s.items[i].VariantID == variant.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, model.EshopCartItem{
			ID:                uuid.NewString(),
			ProductID:         product.ID,
			VariantID:         variant.ID,
			ProductName:       product.Name,
			ProductSlug:       product.Slug,
			VariantAttributes: variant.Attributes,
			Price:             variant.Price,
			Quantity:          quantity,
			AddedAt:           time.Now().UnixMilli(),
		})
	}
	snapshot := append([]model.EshopCartItem(nil), s.items...)
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// UpdateQuantity меняет количество в строке, зажимая его снизу единицей.
func (s *EshopCartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) Result {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			break
		}
	}
	snapshot := append([]model.EshopCartItem(nil), s.items...)
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// RemoveItem удаляет строку из корзины.
func (s *EshopCartService) RemoveItem(ctx context.Context, itemID string) Result {
	s.mu.Lock()
	filtered := make([]model.EshopCartItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != itemID {
			filtered = append(filtered, it)
		}
	}
	s.items = filtered
	snapshot := append([]model.EshopCartItem(nil), filtered...)
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// ClearCart опустошает корзину.
func (s *EshopCartService) ClearCart(ctx context.Context) Result {
	s.mu.Lock()
	s.items = []model.EshopCartItem{}
	s.mu.Unlock()

	return s.persist(ctx, []model.EshopCartItem{})
}

// Items возвращает копию строк корзины.
func (s *EshopCartService) Items() []model.EshopCartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.EshopCartItem(nil), s.items...)
}

// Total суммирует корзину. Валюта берётся из первой строки.
func (s *EshopCartService) Total() model.Price {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := model.Price{Currency: "USD"}
	if len(s.items) > 0 {
		total.Currency = s.items[0].Price.Currency
	}
	for _, it := range s.items {
		total.BasePrice += it.Price.BasePrice * float64(it.Quantity)
	}
	return total
}

// Count возвращает суммарное количество товаров.
func (s *EshopCartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// LoadCheckoutBlocks загружает блоки формы чекаута из конфигурации
// бизнеса. Если конфигурация недоступна или пуста, подставляются
// минимальные блоки email и полного имени.
func (s *EshopCartService) LoadCheckoutBlocks(ctx context.Context) Result {
	business, err := s.api.GetBusiness(ctx)

	var blocks []model.Block
	if err != nil {
		s.logger.Warn("Failed to load business config, using default checkout blocks", zap.Error(err))
	} else if business != nil {
		blocks = business.Configs.CheckoutBlocks
	}
	if len(blocks) == 0 {
		blocks = defaultCheckoutBlocks()
	}

	s.mu.Lock()
	s.checkoutBlocks = blocks
	s.mu.Unlock()
	return Result{Success: true}
}

// CheckoutBlocks возвращает блоки формы чекаута.
func (s *EshopCartService) CheckoutBlocks() []model.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Block(nil), s.checkoutBlocks...)
}

// Checkout оформляет заказ из всех строк корзины. Всё или ничего:
// при ошибке корзина не трогается.
func (s *EshopCartService) Checkout(ctx context.Context, formData map[string]any, paymentMethod string) Result {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return Result{Error: "checkout already in progress"}
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		return Result{Error: "Cart is empty"}
	}
	s.processing = true

	orderItems := make([]model.OrderItem, 0, len(s.items))
	for _, it := range s.items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}
	blocks := make([]model.Block, 0, len(s.checkoutBlocks))
	for _, b := range s.checkoutBlocks {
		value := []any{""}
		if v, found := formData[b.Key]; found && v != nil {
			value = []any{v}
		}
		b.Value = value
		blocks = append(blocks, b)
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Error("Eshop checkout aborted: no guest token", zap.Error(err))
		return Result{Error: fmt.Sprintf("failed to get guest token: %v", err)}
	}

	res, err := s.api.CheckoutOrder(ctx, token, api.OrderRequest{
		BusinessID:    s.businessID,
		Items:         orderItems,
		PaymentMethod: paymentMethod,
		Blocks:        blocks,
	})
	if err != nil {
		s.logger.Error("Eshop checkout failed", zap.Error(err))
		return Result{Error: err.Error()}
	}

	s.mu.Lock()
	s.items = []model.EshopCartItem{}
	s.mu.Unlock()

	if err := s.repo.SaveItems(ctx, []model.EshopCartItem{}); err != nil {
		s.logger.Error("Failed to clear persisted eshop cart", zap.Error(err))
	}

	s.logger.Info("Order placed", zap.String("order_id", res.OrderID))
	return Result{Success: true}
}

func (s *EshopCartService) persist(ctx context.Context, items []model.EshopCartItem) Result {
	if err := s.repo.SaveItems(ctx, items); err != nil {
		s.logger.Error("Failed to persist eshop cart", zap.Error(err))
		return Result{Error: fmt.Sprintf("failed to persist cart: %v", err)}
	}
	return Result{Success: true}
}

// defaultCheckoutBlocks минимальная форма чекаута.
func defaultCheckoutBlocks() []model.Block {
	return []model.Block{
		{
			ID:   uuid.NewString(),
			Key:  "email",
			Type: "text",
			Properties: model.BlockProperties{
				Label:       model.LocalizedText{"en": "Email Address"},
				IsRequired:  true,
				Placeholder: "your@email.com",
			},
		},
		{
			ID:   uuid.NewString(),
			Key:  "fullName",
			Type: "text",
			Properties: model.BlockProperties{
				Label:       model.LocalizedText{"en": "Full Name"},
				IsRequired:  true,
				Placeholder: "John Doe",
			},
		},
	}
}
