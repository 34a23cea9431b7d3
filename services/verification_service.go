package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/repository"
)

var (
	ErrPhoneRequired   = errors.New("phone number is required")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeInvalid     = errors.New("verification code invalid")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrNoPendingCode   = errors.New("no pending verification for this number")
)

const maxVerifyAttempts = 5

// SMSSender delivers the code. Production wires an SMS gateway; dev logs.
type SMSSender interface {
	Send(phone, code string) error
}

type LogSender struct{}

func (LogSender) Send(phone, code string) error {
	log.Printf("verification code for %s: %s", phone, code)
	return nil
}

type VerificationService struct {
	Repo     *repository.VerificationRepository
	UserRepo *repository.UserRepository
	Sender   SMSSender
	TTL      time.Duration

	now      func() time.Time
	makeCode func() string
}

func NewVerificationService(repo *repository.VerificationRepository, userRepo *repository.UserRepository, sender SMSSender, ttl time.Duration) *VerificationService {
	return &VerificationService{
		Repo: repo, UserRepo: userRepo, Sender: sender, TTL: ttl,
		now: time.Now, makeCode: randomCode,
	}
}

func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// rand.Reader failing means the process is in real trouble
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// Send issues a fresh code for the number and expires any outstanding one.
func (s *VerificationService) Send(userID uint, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneRequired
	}
	now := s.now()

	if err := s.Repo.InvalidateForPhone(userID, phone, now); err != nil {
		return err
	}

	v := entity.PhoneVerification{
		PhoneNumber: phone,
		Code:        s.makeCode(),
		ExpiresAt:   now.Add(s.TTL),
		UserID:      userID,
	}
	if err := s.Repo.Create(&v); err != nil {
		return err
	}
	return s.Sender.Send(phone, v.Code)
}

// Verify checks the latest code and, on success, marks the user's phone
// verified so checkout can proceed.
func (s *VerificationService) Verify(userID uint, phone, code string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneRequired
	}

	v, err := s.Repo.LatestForPhone(userID, phone)
	if err != nil {
		return ErrNoPendingCode
	}

	now := s.now()
	if v.Expired(now) {
		return ErrCodeExpired
	}
	if v.Attempts >= maxVerifyAttempts {
		return ErrTooManyAttempts
	}
	if v.Code != code {
		if err := s.Repo.IncrementAttempts(v.ID); err != nil {
			return err
		}
		return ErrCodeInvalid
	}

	if err := s.Repo.MarkVerified(v.ID, now); err != nil {
		return err
	}
	return s.UserRepo.MarkPhoneVerified(userID, phone, now)
}
