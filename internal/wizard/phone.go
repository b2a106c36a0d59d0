package wizard

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

// пауза перед повторной отправкой кода; сам отсчёт рисует UI
const resendCooldown = 30 * time.Second

// SetPhoneNumber задаёт номер телефона для подтверждения.
func (s *Store) SetPhoneNumber(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phone.PhoneNumber = phone
}

// SetVerificationCode задаёт введённый пользователем код.
func (s *Store) SetVerificationCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phone.VerificationCode = code
}

// stripNonDigits оставляет только цифры.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validPhoneNumber проверяет формат: 8-15 цифр после очистки.
func validPhoneNumber(phone string) bool {
	n := len(stripNonDigits(phone))
	return n >= 8 && n <= 15
}

// validVerificationCode проверяет формат: ровно 4 цифры.
func validVerificationCode(code string) bool {
	return len(stripNonDigits(code)) == 4
}

// SendVerificationCode сохраняет телефон профиля, сервер отправляет код.
// Невалидный номер до сети не доходит.
func (s *Store) SendVerificationCode(ctx context.Context) Result {
	s.mu.Lock()
	s.phone.PhoneError = ""
	s.phone.PhoneSuccess = ""
	s.phone.State = model.VerificationSending
	phone := s.phone.PhoneNumber
	s.mu.Unlock()

	if !validPhoneNumber(phone) {
		s.mu.Lock()
		s.phone.PhoneError = "Please enter a valid phone number"
		s.phone.State = model.VerificationError
		s.mu.Unlock()
		return fail("Please enter a valid phone number")
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.mu.Lock()
		s.phone.PhoneError = err.Error()
		s.phone.State = model.VerificationError
		s.mu.Unlock()
		return fail("%v", err)
	}

	err = s.api.UpdateProfilePhone(ctx, token, phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Failed to send verification code", zap.Error(err))
		s.phone.PhoneError = err.Error()
		s.phone.State = model.VerificationError
		return fail("%v", err)
	}

	now := time.Now()
	s.phone.PhoneSuccess = "Verification code sent successfully!"
	s.phone.CodeSentAt = now
	s.phone.CanResendAt = now.Add(resendCooldown)
	s.phone.State = model.VerificationSent
	return ok()
}

// VerifyPhoneCode проверяет код подтверждения. Известные ошибки сервера
// переводятся в понятные сообщения по подстроке, остальные получают
// общее сообщение о неверном коде.
func (s *Store) VerifyPhoneCode(ctx context.Context) Result {
	s.mu.Lock()
	s.phone.VerifyError = ""
	s.phone.State = model.VerificationVerifying
	phone := s.phone.PhoneNumber
	code := s.phone.VerificationCode
	s.mu.Unlock()

	if !validVerificationCode(code) {
		s.mu.Lock()
		s.phone.VerifyError = "Please enter a 4-digit verification code"
		s.phone.State = model.VerificationError
		s.mu.Unlock()
		return fail("Please enter a 4-digit verification code")
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.mu.Lock()
		s.phone.VerifyError = "Failed to verify code. Please try again."
		s.phone.State = model.VerificationError
		s.mu.Unlock()
		return fail("%v", err)
	}

	err = s.api.ConfirmPhoneNumber(ctx, token, phone, code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		msg := verifyErrorMessage(err.Error())
		s.phone.VerifyError = msg
		s.phone.State = model.VerificationError
		return fail("%s", msg)
	}

	s.phone.IsPhoneVerified = true
	s.phone.PhoneSuccess = ""
	s.phone.VerificationCode = ""
	s.phone.State = model.VerificationVerified
	return ok()
}

// verifyErrorMessage переводит ошибку сервера в сообщение пользователю.
func verifyErrorMessage(serverError string) string {
	lower := strings.ToLower(serverError)
	switch {
	case strings.Contains(lower, "expired"):
		return "Verification code has expired. Please request a new one."
	case strings.Contains(lower, "incorrect"), strings.Contains(lower, "invalid"):
		return "Incorrect verification code. Please try again."
	default:
		return "Invalid verification code"
	}
}
