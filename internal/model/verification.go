package model

import "time"

// VerificationState состояние подпроцесса подтверждения телефона.
type VerificationState string

const (
	VerificationIdle      VerificationState = "idle"
	VerificationSending   VerificationState = "sending"
	VerificationSent      VerificationState = "sent"
	VerificationVerifying VerificationState = "verifying"
	VerificationVerified  VerificationState = "verified"
	VerificationError     VerificationState = "error"
)

// PhoneVerification состояние подтверждения телефона в рамках шага мастера.
type PhoneVerification struct {
	PhoneNumber      string            `json:"phoneNumber"`
	VerificationCode string            `json:"verificationCode"`
	State            VerificationState `json:"state"`
	IsPhoneVerified  bool              `json:"isPhoneVerified"`
	PhoneError       string            `json:"phoneError,omitempty"`
	PhoneSuccess     string            `json:"phoneSuccess,omitempty"`
	VerifyError      string            `json:"verifyError,omitempty"`
	CodeSentAt       time.Time         `json:"codeSentAt,omitzero"`
	CanResendAt      time.Time         `json:"canResendAt,omitzero"`
}
