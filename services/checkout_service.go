package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
	"github.com/amrkal/moringa-backend/pkg/enums/ordertype"
	"github.com/amrkal/moringa-backend/pkg/enums/payment"
	"github.com/amrkal/moringa-backend/pkg/localized"
	"github.com/amrkal/moringa-backend/repository"
)

var (
	ErrCartEmpty             = errors.New("cart is empty")
	ErrNoOrderTypes          = errors.New("no order types enabled")
	ErrNoPaymentMethods      = errors.New("no payment methods enabled")
	ErrOrderTypeDisabled     = errors.New("order type not enabled")
	ErrPaymentMethodDisabled = errors.New("payment method not enabled")
	ErrAddressRequired       = errors.New("delivery address is required")
	ErrPhoneUnverified       = errors.New("phone number not verified")
)

// CheckoutState is where the flow lands after order creation.
type CheckoutState string

const (
	StateCompleted   CheckoutState = "COMPLETED"
	StateAwaitCard   CheckoutState = "AWAIT_CARD_PAYMENT"
	StateAwaitWallet CheckoutState = "AWAIT_WALLET_PAYMENT"
)

// OrderNotifier receives order lifecycle events (websocket hub in prod).
type OrderNotifier interface {
	OrderCreated(o *entity.Order)
	OrderPaid(o *entity.Order)
}

type CheckoutService struct {
	DB           *gorm.DB
	OrderRepo    *repository.OrderRepository
	CartRepo     *repository.CartRepository
	SettingsRepo *repository.SettingsRepository
	UserRepo     *repository.UserRepository
	Payments     *PaymentService
	Notifier     OrderNotifier // optional

	now func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	or *repository.OrderRepository,
	cr *repository.CartRepository,
	sr *repository.SettingsRepository,
	ur *repository.UserRepository,
	pay *PaymentService,
	notifier OrderNotifier,
) *CheckoutService {
	return &CheckoutService{
		DB: db, OrderRepo: or, CartRepo: cr, SettingsRepo: sr, UserRepo: ur,
		Payments: pay, Notifier: notifier,
		now: time.Now,
	}
}

type CheckoutIn struct {
	OrderType       ordertype.Type `json:"orderType"`
	PaymentMethod   payment.Method `json:"paymentMethod"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Note            string         `json:"note"`
}

type CheckoutResult struct {
	OrderID     uint          `json:"orderId"`
	OrderNumber string        `json:"orderNumber"`
	Subtotal    int64         `json:"subtotal"`
	Tax         int64         `json:"tax"`
	DeliveryFee int64         `json:"deliveryFee"`
	Total       int64         `json:"total"`
	State       CheckoutState `json:"state"`
	// ClientSecret is set only for AWAIT_CARD_PAYMENT.
	ClientSecret string `json:"clientSecret,omitempty"`
}

// DefaultOrderType picks the first enabled of delivery, takeaway, dine-in.
func DefaultOrderType(s *entity.Settings) (ordertype.Type, bool) {
	switch {
	case s.AcceptDelivery:
		return ordertype.Delivery, true
	case s.AcceptTakeaway:
		return ordertype.TakeAway, true
	case s.AcceptDineIn:
		return ordertype.DineIn, true
	}
	return "", false
}

// DefaultPaymentMethod picks the first enabled of card, cash, mobile money.
func DefaultPaymentMethod(s *entity.Settings) (payment.Method, bool) {
	switch {
	case s.AcceptCard:
		return payment.Card, true
	case s.AcceptCash:
		return payment.Cash, true
	case s.AcceptMobileMoney:
		return payment.MobileMoney, true
	}
	return "", false
}

func orderTypeEnabled(s *entity.Settings, t ordertype.Type) bool {
	switch t {
	case ordertype.Delivery:
		return s.AcceptDelivery
	case ordertype.TakeAway:
		return s.AcceptTakeaway
	case ordertype.DineIn:
		return s.AcceptDineIn
	}
	return false
}

func paymentMethodEnabled(s *entity.Settings, m payment.Method) bool {
	switch m {
	case payment.Cash:
		return s.AcceptCash
	case payment.Card:
		return s.AcceptCard
	case payment.MobileMoney:
		return s.AcceptMobileMoney
	}
	return false
}

// NormalizePaymentMethod forces cash for anything that is not a delivery.
// Pre-payment is only meaningful for delivery; dine-in and takeaway settle
// in person whatever the customer clicked.
func NormalizePaymentMethod(t ordertype.Type, m payment.Method) payment.Method {
	if t != ordertype.Delivery {
		return payment.Cash
	}
	return m
}

// coerceMealName is the single localized-to-plain coercion. Applying it to
// an already-plain string returns the string unchanged, so the defensive
// re-application before payload assembly is a no-op on healthy data.
func coerceMealName(name string) string {
	return localized.FromString(name).Resolve()
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// taxOn rounds subtotal*rate to whole minor units, half away from zero.
func taxOn(subtotal int64, rate float64) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).IntPart()
}

// Checkout assembles the order from the current cart snapshot and routes it
// into the right fulfilment path. When err is nil and the state is one of
// the AWAIT_* values, the cart is intentionally left intact; it is cleared
// only on confirmed payment.
func (s *CheckoutService) Checkout(userID uint, in *CheckoutIn) (*CheckoutResult, error) {
	settings, err := s.SettingsRepo.Get()
	if err != nil {
		return nil, err
	}

	orderType := in.OrderType
	if orderType == "" {
		t, ok := DefaultOrderType(settings)
		if !ok {
			return nil, ErrNoOrderTypes
		}
		orderType = t
	}
	if !orderType.Valid() || !orderTypeEnabled(settings, orderType) {
		if _, ok := DefaultOrderType(settings); !ok {
			return nil, ErrNoOrderTypes
		}
		return nil, ErrOrderTypeDisabled
	}

	method := in.PaymentMethod
	if method == "" {
		m, ok := DefaultPaymentMethod(settings)
		if !ok {
			return nil, ErrNoPaymentMethods
		}
		method = m
	}
	if !method.Valid() {
		return nil, ErrPaymentMethodDisabled
	}
	method = NormalizePaymentMethod(orderType, method)
	if method.Online() && !paymentMethodEnabled(settings, method) {
		return nil, ErrPaymentMethodDisabled
	}

	address := strings.TrimSpace(in.DeliveryAddress)
	if orderType == ordertype.Delivery && address == "" {
		return nil, ErrAddressRequired
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.PhoneVerified() {
		return nil, ErrPhoneUnverified
	}

	cart, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var subtotal int64
	for _, it := range cart.Items {
		subtotal += it.Total
	}
	tax := taxOn(subtotal, settings.TaxRate)
	var deliveryFee int64
	if orderType == ordertype.Delivery {
		deliveryFee = settings.DeliveryFee
	}
	total := subtotal + tax + deliveryFee

	order := entity.Order{
		OrderNumber:     newOrderNumber(),
		OrderType:       orderType,
		PaymentMethod:   method,
		Status:          orderstatus.Pending,
		Subtotal:        subtotal,
		Tax:             tax,
		DeliveryFee:     deliveryFee,
		Total:           total,
		DeliveryAddress: address,
		PhoneNumber:     user.PhoneNumber,
		UserID:          userID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.OrderRepo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, it := range cart.Items {
			oi := entity.OrderItem{
				OrderID: order.ID,
				MealID:  it.MealID,
				// re-coerced right before assembly; a plain string passes
				// through unchanged
				MealName:  coerceMealName(it.MealName),
				Qty:       it.Qty,
				UnitPrice: it.UnitPrice,
				Total:     it.Total,
				Note:      it.Note,
			}
			if err := s.OrderRepo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			for _, ing := range it.Ingredients {
				row := entity.OrderItemIngredient{
					OrderItemID:  oi.ID,
					IngredientID: ing.IngredientID,
					Name:         ing.Name,
					Price:        ing.Price,
					Removed:      ing.Removed,
				}
				if err := s.OrderRepo.CreateOrderItemIngredient(tx, &row); err != nil {
					return err
				}
			}
		}

		if method.Online() {
			p := entity.Payment{
				Amount:  total,
				Method:  method,
				Status:  payment.StatusPending,
				OrderID: order.ID,
			}
			if err := s.OrderRepo.CreatePayment(tx, &p); err != nil {
				return err
			}
			// cart stays; it is cleared when the payment settles
			return nil
		}

		return s.CartRepo.ClearCart(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: deliveryFee,
		Total:       total,
	}

	switch method {
	case payment.Card:
		result.State = StateAwaitCard
		secret, err := s.Payments.CreateCardIntent(&order, settings.Currency)
		if err != nil {
			// the order exists in pending state; the client retries via
			// the create-payment-intent endpoint
			return result, err
		}
		result.ClientSecret = secret
	case payment.MobileMoney:
		result.State = StateAwaitWallet
		if err := s.Payments.InitiateWalletPush(&order); err != nil {
			return result, err
		}
	default:
		result.State = StateCompleted
		if s.Notifier != nil {
			s.Notifier.OrderCreated(&order)
		}
	}

	return result, nil
}

// ConfirmPayment settles an online payment and finishes the checkout: only
// here does the cart empty for card/wallet orders.
func (s *CheckoutService) ConfirmPayment(userID, orderID uint) (*entity.Order, error) {
	order, err := s.OrderRepo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	p, err := s.OrderRepo.GetPaymentByOrder(order.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	alreadyPaid := p.Status == payment.StatusPaid

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Payments.Settle(tx, p, s.now()); err != nil {
			return err
		}
		return s.CartRepo.ClearCart(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	// a repeated confirm settles as a no-op and must not ring the bell twice
	if s.Notifier != nil && !alreadyPaid {
		s.Notifier.OrderPaid(order)
	}
	return order, nil
}

// CancelPayment abandons the pending payment and leaves both the unpaid
// order and the cart untouched so the customer can retry.
func (s *CheckoutService) CancelPayment(userID, orderID uint) error {
	order, err := s.OrderRepo.GetOrderForUser(userID, orderID)
	if err != nil {
		return err
	}
	p, err := s.OrderRepo.GetPaymentByOrder(order.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	return s.Payments.Cancel(p)
}

// RetryCardIntent re-issues (or re-reads) the client secret for an order
// whose first intent attempt failed or was cancelled. Non-card orders are
// rejected so a retry can never cross payment rails.
func (s *CheckoutService) RetryCardIntent(userID, orderID uint) (string, error) {
	order, err := s.OrderRepo.GetOrderForUser(userID, orderID)
	if err != nil {
		return "", err
	}
	settings, err := s.SettingsRepo.Get()
	if err != nil {
		return "", err
	}
	return s.Payments.CreateCardIntent(order, settings.Currency)
}

// RetryWalletPush re-triggers the push prompt for a mobile-money order whose
// first attempt failed; an already-initiated push is reused.
func (s *CheckoutService) RetryWalletPush(userID, orderID uint) error {
	order, err := s.OrderRepo.GetOrderForUser(userID, orderID)
	if err != nil {
		return err
	}
	return s.Payments.InitiateWalletPush(order)
}
