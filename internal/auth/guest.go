package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// запас до истечения токена, после которого берём новый
const expiryLeeway = 30 * time.Second

// LoginAPI часть API-клиента, нужная провайдеру токенов.
type LoginAPI interface {
	GuestLogin(ctx context.Context) (string, error)
}

// GuestTokenProvider выдаёт гостевой токен и переиспользует его,
// пока не истёк срок действия.
type GuestTokenProvider struct {
	mu     sync.Mutex
	api    LoginAPI
	logger *zap.Logger
	token  string
}

// NewGuestTokenProvider создаёт провайдер гостевых токенов.
func NewGuestTokenProvider(api LoginAPI, logger *zap.Logger) *GuestTokenProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuestTokenProvider{api: api, logger: logger}
}

// Token возвращает закэшированный токен или получает новый.
func (p *GuestTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && !tokenExpiresSoon(p.token) {
		return p.token, nil
	}

	token, err := p.api.GuestLogin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get guest token: %w", err)
	}

	p.logger.Debug("Guest token acquired")
	p.token = token
	return token, nil
}

// Reset сбрасывает закэшированный токен.
func (p *GuestTokenProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
}

// tokenExpiresSoon проверяет exp-клейм без валидации подписи:
// виджет не издатель токена, подпись проверяет сервер.
// Токен без разбираемого exp считаем живым.
func tokenExpiresSoon(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return time.Until(exp.Time) < expiryLeeway
}
