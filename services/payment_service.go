package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/payment"
	"github.com/amrkal/moringa-backend/repository"
)

var (
	ErrPaymentNotFound       = errors.New("no payment for this order")
	ErrPaymentNotPending     = errors.New("payment is not pending")
	ErrPaymentUnsettled      = errors.New("payment not settled with provider")
	ErrPaymentMethodMismatch = errors.New("payment method does not match this operation")
)

// CardProcessor is the tokenized card flow (Stripe in production).
type CardProcessor interface {
	CreateIntent(amount int64, currency, orderNumber string) (ref, clientSecret string, err error)
	IntentSecret(ref string) (string, error)
	IntentPaid(ref string) (bool, error)
	CancelIntent(ref string) error
}

// WalletProcessor is the mobile-money push-payment flow: a prompt is pushed
// to the customer's phone and settles out of band.
type WalletProcessor interface {
	InitiatePush(phone string, amount int64, orderNumber string) (ref string, err error)
	PushPaid(ref string) (bool, error)
}

type PaymentService struct {
	DB     *gorm.DB
	Repo   *repository.OrderRepository
	Card   CardProcessor
	Wallet WalletProcessor

	PublishableKey string
}

func NewPaymentService(db *gorm.DB, repo *repository.OrderRepository, card CardProcessor, wallet WalletProcessor, publishableKey string) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Card: card, Wallet: wallet, PublishableKey: publishableKey}
}

// CreateCardIntent returns the client secret for the order's pending
// payment. A checkout that already produced an intent gets the same one
// back; retries never create a second charge for the same order.
func (s *PaymentService) CreateCardIntent(o *entity.Order, currency string) (string, error) {
	p, err := s.Repo.GetPaymentByOrder(o.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPaymentNotFound
		}
		return "", err
	}
	// a wallet payment must never pick up a Stripe ref
	if p.Method != payment.Card {
		return "", ErrPaymentMethodMismatch
	}

	if p.Status == payment.StatusPending && p.ProviderRef != "" {
		return s.Card.IntentSecret(p.ProviderRef)
	}

	ref, secret, err := s.Card.CreateIntent(p.Amount, currency, o.OrderNumber)
	if err != nil {
		return "", err
	}
	p.ProviderRef = ref
	p.Status = payment.StatusPending
	if err := s.Repo.SavePayment(s.DB, p); err != nil {
		return "", err
	}
	return secret, nil
}

// InitiateWalletPush triggers the push prompt against the order's verified
// phone number, reusing an already-initiated push on retry.
func (s *PaymentService) InitiateWalletPush(o *entity.Order) error {
	p, err := s.Repo.GetPaymentByOrder(o.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if p.Method != payment.MobileMoney {
		return ErrPaymentMethodMismatch
	}
	if p.Status == payment.StatusPending && p.ProviderRef != "" {
		return nil
	}

	ref, err := s.Wallet.InitiatePush(o.PhoneNumber, p.Amount, o.OrderNumber)
	if err != nil {
		return err
	}
	p.ProviderRef = ref
	p.Status = payment.StatusPending
	return s.Repo.SavePayment(s.DB, p)
}

// Settle checks the provider and marks the payment paid. Already-paid
// payments settle again without side effects.
func (s *PaymentService) Settle(tx *gorm.DB, p *entity.Payment, now time.Time) error {
	if p.Status == payment.StatusPaid {
		return nil
	}
	if p.Status != payment.StatusPending || p.ProviderRef == "" {
		return ErrPaymentNotPending
	}

	var paid bool
	var err error
	switch p.Method {
	case payment.Card:
		paid, err = s.Card.IntentPaid(p.ProviderRef)
	case payment.MobileMoney:
		paid, err = s.Wallet.PushPaid(p.ProviderRef)
	default:
		return ErrPaymentNotPending
	}
	if err != nil {
		return err
	}
	if !paid {
		return ErrPaymentUnsettled
	}

	p.Status = payment.StatusPaid
	p.PaidAt = &now
	return s.Repo.SavePayment(tx, p)
}

// Cancel abandons a pending payment. The order stays unpaid server-side so
// the customer can retry or switch methods; repeated cancels are no-ops.
func (s *PaymentService) Cancel(p *entity.Payment) error {
	if p.Status != payment.StatusPending {
		return nil
	}
	if p.Method == payment.Card && p.ProviderRef != "" {
		// best effort; an already-consumed intent just stays as-is
		_ = s.Card.CancelIntent(p.ProviderRef)
	}
	p.Status = payment.StatusCancelled
	return s.Repo.SavePayment(s.DB, p)
}
