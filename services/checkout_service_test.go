package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
	"github.com/amrkal/moringa-backend/pkg/enums/ordertype"
	"github.com/amrkal/moringa-backend/pkg/enums/payment"
	"github.com/amrkal/moringa-backend/repository"
)

type fakeCard struct {
	createCalls int
	failCreate  bool
	paid        bool
	cancelled   []string
}

func (f *fakeCard) CreateIntent(amount int64, currency, orderNumber string) (string, string, error) {
	f.createCalls++
	if f.failCreate {
		return "", "", errors.New("provider down")
	}
	ref := fmt.Sprintf("pi_%s_%d", orderNumber, f.createCalls)
	return ref, ref + "_secret", nil
}

func (f *fakeCard) IntentSecret(ref string) (string, error) { return ref + "_secret", nil }
func (f *fakeCard) IntentPaid(ref string) (bool, error)     { return f.paid, nil }
func (f *fakeCard) CancelIntent(ref string) error {
	f.cancelled = append(f.cancelled, ref)
	return nil
}

type fakeWallet struct {
	pushCalls int
	lastPhone string
	failPush  bool
	paid      bool
}

func (f *fakeWallet) InitiatePush(phone string, amount int64, orderNumber string) (string, error) {
	f.pushCalls++
	f.lastPhone = phone
	if f.failPush {
		return "", errors.New("gateway down")
	}
	return "push_" + orderNumber, nil
}

func (f *fakeWallet) PushPaid(ref string) (bool, error) { return f.paid, nil }

type fakeNotifier struct {
	created []string
	paid    []string
}

func (f *fakeNotifier) OrderCreated(o *entity.Order) { f.created = append(f.created, o.OrderNumber) }
func (f *fakeNotifier) OrderPaid(o *entity.Order)    { f.paid = append(f.paid, o.OrderNumber) }

func allOnSettings() entity.Settings {
	return entity.Settings{
		DeliveryFee: 1500, TaxRate: 0.17, Currency: "ils",
		AcceptDelivery: true, AcceptDineIn: true, AcceptTakeaway: true,
		AcceptCash: true, AcceptCard: true, AcceptMobileMoney: true,
	}
}

func newCheckout(db *gorm.DB, card CardProcessor, wallet WalletProcessor, n OrderNotifier) *CheckoutService {
	or := repository.NewOrderRepository(db)
	pay := NewPaymentService(db, or, card, wallet, "pk_test")
	return NewCheckoutService(db, or,
		repository.NewCartRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewUserRepository(db),
		pay, n)
}

func fillCart(t *testing.T, db *gorm.DB, userID uint, extras ...uint) {
	t.Helper()
	m, _ := seedMeal(t, db)
	require.NoError(t, newCartService(db).Add(userID, &AddToCartIn{
		MealID: m.ID, Qty: 2, SelectedIngredients: extras,
	}))
}

func TestCheckoutCashDelivery(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	notifier := &fakeNotifier{}
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, notifier)

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Cash,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, res.State)
	assert.Equal(t, int64(9000), res.Subtotal)
	assert.Equal(t, int64(1530), res.Tax) // 9000 * 0.17
	assert.Equal(t, int64(1500), res.DeliveryFee)
	assert.Equal(t, int64(12030), res.Total)
	assert.True(t, strings.HasPrefix(res.OrderNumber, "ORD-"))
	assert.Len(t, notifier.created, 1)

	// cash settles in person, the cart empties immediately
	out, err := newCartService(db).Get(u.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Cart.Items)

	var o entity.Order
	require.NoError(t, db.First(&o, res.OrderID).Error)
	assert.Equal(t, orderstatus.Pending, o.Status)
	assert.Equal(t, "12 Main St", o.DeliveryAddress)
	assert.Equal(t, u.PhoneNumber, o.PhoneNumber)

	var items []entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", o.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Shawarma", items[0].MealName)
	assert.Equal(t, 2, items[0].Qty)
}

func TestCheckoutNonDeliveryForcesCash(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{}
	svc := newCheckout(db, card, &fakeWallet{}, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:     ordertype.DineIn,
		PaymentMethod: payment.Card,
	})
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, res.State)
	assert.Zero(t, res.DeliveryFee)
	assert.Zero(t, card.createCalls)

	var o entity.Order
	require.NoError(t, db.First(&o, res.OrderID).Error)
	assert.Equal(t, payment.Cash, o.PaymentMethod)

	var count int64
	require.NoError(t, db.Model(&entity.Payment{}).Where("order_id = ?", o.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutDeliveryRequiresAddress(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	_, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Cash,
		DeliveryAddress: "   ",
	})
	assert.ErrorIs(t, err, ErrAddressRequired)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutRequiresVerifiedPhone(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, false)
	fillCart(t, db, u.ID)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	_, err := svc.Checkout(u.ID, &CheckoutIn{OrderType: ordertype.DineIn})
	assert.ErrorIs(t, err, ErrPhoneUnverified)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	_, err := svc.Checkout(u.ID, &CheckoutIn{OrderType: ordertype.DineIn})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutDefaultsFromSettings(t *testing.T) {
	db := newTestDB(t)
	s := allOnSettings()
	s.AcceptDelivery = false
	s.AcceptCard = false
	seedSettings(t, db, s)
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	// no type and no method requested: takeaway + cash get picked
	res, err := svc.Checkout(u.ID, &CheckoutIn{})
	require.NoError(t, err)

	var o entity.Order
	require.NoError(t, db.First(&o, res.OrderID).Error)
	assert.Equal(t, ordertype.TakeAway, o.OrderType)
	assert.Equal(t, payment.Cash, o.PaymentMethod)
	assert.Zero(t, res.DeliveryFee)
}

func TestCheckoutNoOrderTypesEnabled(t *testing.T) {
	db := newTestDB(t)
	s := allOnSettings()
	s.AcceptDelivery, s.AcceptDineIn, s.AcceptTakeaway = false, false, false
	seedSettings(t, db, s)
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	_, err := svc.Checkout(u.ID, &CheckoutIn{})
	assert.ErrorIs(t, err, ErrNoOrderTypes)

	_, err = svc.Checkout(u.ID, &CheckoutIn{OrderType: ordertype.Delivery, DeliveryAddress: "x"})
	assert.ErrorIs(t, err, ErrNoOrderTypes)
}

func TestCheckoutDisabledOrderType(t *testing.T) {
	db := newTestDB(t)
	s := allOnSettings()
	s.AcceptDineIn = false
	seedSettings(t, db, s)
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	_, err := svc.Checkout(u.ID, &CheckoutIn{OrderType: ordertype.DineIn})
	assert.ErrorIs(t, err, ErrOrderTypeDisabled)
}

func TestCheckoutDisabledCardMethod(t *testing.T) {
	db := newTestDB(t)
	s := allOnSettings()
	s.AcceptCard = false
	seedSettings(t, db, s)
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	svc := newCheckout(db, &fakeCard{}, &fakeWallet{}, &fakeNotifier{})

	_, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	assert.ErrorIs(t, err, ErrPaymentMethodDisabled)
}

func TestCheckoutCardFlowClearsCartOnlyOnConfirm(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{}
	notifier := &fakeNotifier{}
	svc := newCheckout(db, card, &fakeWallet{}, notifier)

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, StateAwaitCard, res.State)
	assert.NotEmpty(t, res.ClientSecret)
	assert.Equal(t, 1, card.createCalls)
	assert.Empty(t, notifier.created)

	// nothing is settled yet, the cart must survive an abandoned payment
	out, err := newCartService(db).Get(u.ID)
	require.NoError(t, err)
	assert.Len(t, out.Cart.Items, 1)

	var p entity.Payment
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.Equal(t, payment.StatusPending, p.Status)
	assert.Equal(t, res.Total, p.Amount)

	card.paid = true
	o, err := svc.ConfirmPayment(u.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, res.OrderNumber, o.OrderNumber)
	assert.Equal(t, []string{res.OrderNumber}, notifier.paid)

	out, err = newCartService(db).Get(u.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Cart.Items)

	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.Equal(t, payment.StatusPaid, p.Status)
	assert.NotNil(t, p.PaidAt)
}

func TestCheckoutConfirmUnsettledKeepsCart(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{} // provider reports unpaid
	svc := newCheckout(db, card, &fakeWallet{}, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(u.ID, res.OrderID)
	assert.ErrorIs(t, err, ErrPaymentUnsettled)

	out, err := newCartService(db).Get(u.ID)
	require.NoError(t, err)
	assert.Len(t, out.Cart.Items, 1)
}

func TestCheckoutCardRetryReusesIntent(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{}
	svc := newCheckout(db, card, &fakeWallet{}, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	secret, err := svc.RetryCardIntent(u.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, res.ClientSecret, secret)
	// the pending intent is reused, never recreated
	assert.Equal(t, 1, card.createCalls)
}

func TestCheckoutCardProviderFailureKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{failCreate: true}
	svc := newCheckout(db, card, &fakeWallet{}, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.Error(t, err)
	// the order survives the provider outage so the client can retry
	require.NotNil(t, res)
	assert.NotZero(t, res.OrderID)
	assert.Equal(t, StateAwaitCard, res.State)
	assert.Empty(t, res.ClientSecret)

	card.failCreate = false
	secret, err := svc.RetryCardIntent(u.ID, res.OrderID)
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
}

func TestCheckoutCancelPaymentKeepsOrderAndCart(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{}
	svc := newCheckout(db, card, &fakeWallet{}, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelPayment(u.ID, res.OrderID))
	// cancelling twice changes nothing
	require.NoError(t, svc.CancelPayment(u.ID, res.OrderID))
	assert.Len(t, card.cancelled, 1)

	var p entity.Payment
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.Equal(t, payment.StatusCancelled, p.Status)

	var o entity.Order
	require.NoError(t, db.First(&o, res.OrderID).Error)
	assert.Equal(t, orderstatus.Pending, o.Status)

	out, err := newCartService(db).Get(u.ID)
	require.NoError(t, err)
	assert.Len(t, out.Cart.Items, 1)
}

func TestCheckoutWalletFlow(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	wallet := &fakeWallet{}
	notifier := &fakeNotifier{}
	svc := newCheckout(db, &fakeCard{}, wallet, notifier)

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.MobileMoney,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, StateAwaitWallet, res.State)
	assert.Equal(t, 1, wallet.pushCalls)
	assert.Equal(t, u.PhoneNumber, wallet.lastPhone)

	wallet.paid = true
	_, err = svc.ConfirmPayment(u.ID, res.OrderID)
	require.NoError(t, err)
	assert.Len(t, notifier.paid, 1)

	out, err := newCartService(db).Get(u.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Cart.Items)
}

func TestCheckoutWalletRetryStaysOnWalletRail(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{}
	wallet := &fakeWallet{failPush: true}
	svc := newCheckout(db, card, wallet, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.MobileMoney,
		DeliveryAddress: "12 Main St",
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, StateAwaitWallet, res.State)

	// the card retry endpoint must refuse a mobile-money order outright
	_, err = svc.RetryCardIntent(u.ID, res.OrderID)
	assert.ErrorIs(t, err, ErrPaymentMethodMismatch)
	assert.Zero(t, card.createCalls)

	var p entity.Payment
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.Equal(t, payment.MobileMoney, p.Method)
	assert.Empty(t, p.ProviderRef)

	wallet.failPush = false
	require.NoError(t, svc.RetryWalletPush(u.ID, res.OrderID))
	assert.Equal(t, 2, wallet.pushCalls)

	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.True(t, strings.HasPrefix(p.ProviderRef, "push_"))

	// an outstanding push is reused, not re-sent
	require.NoError(t, svc.RetryWalletPush(u.ID, res.OrderID))
	assert.Equal(t, 2, wallet.pushCalls)

	wallet.paid = true
	_, err = svc.ConfirmPayment(u.ID, res.OrderID)
	require.NoError(t, err)
}

func TestCheckoutWalletRetryRejectsCardOrder(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	wallet := &fakeWallet{}
	svc := newCheckout(db, &fakeCard{}, wallet, &fakeNotifier{})

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RetryWalletPush(u.ID, res.OrderID), ErrPaymentMethodMismatch)
	assert.Zero(t, wallet.pushCalls)

	// the card intent is untouched by the rejected crossover
	var p entity.Payment
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.Equal(t, payment.Card, p.Method)
	assert.True(t, strings.HasPrefix(p.ProviderRef, "pi_"))
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedSettings(t, db, allOnSettings())
	u := seedUser(t, db, true)
	fillCart(t, db, u.ID)
	card := &fakeCard{paid: true}
	notifier := &fakeNotifier{}
	svc := newCheckout(db, card, &fakeWallet{}, notifier)

	res, err := svc.Checkout(u.ID, &CheckoutIn{
		OrderType:       ordertype.Delivery,
		PaymentMethod:   payment.Card,
		DeliveryAddress: "12 Main St",
	})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(u.ID, res.OrderID)
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(u.ID, res.OrderID)
	require.NoError(t, err)

	var p entity.Payment
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&p).Error)
	assert.Equal(t, payment.StatusPaid, p.Status)

	// the repeated confirm settles quietly, admins hear the bell once
	assert.Len(t, notifier.paid, 1)
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		orderType ordertype.Type
		in, want  payment.Method
	}{
		{ordertype.Delivery, payment.Card, payment.Card},
		{ordertype.Delivery, payment.MobileMoney, payment.MobileMoney},
		{ordertype.Delivery, payment.Cash, payment.Cash},
		{ordertype.DineIn, payment.Card, payment.Cash},
		{ordertype.DineIn, payment.MobileMoney, payment.Cash},
		{ordertype.TakeAway, payment.Card, payment.Cash},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizePaymentMethod(c.orderType, c.in),
			"%s + %s", c.orderType, c.in)
	}
}

func TestDefaultOrderTypePreference(t *testing.T) {
	s := allOnSettings()
	got, ok := DefaultOrderType(&s)
	assert.True(t, ok)
	assert.Equal(t, ordertype.Delivery, got)

	s.AcceptDelivery = false
	got, _ = DefaultOrderType(&s)
	assert.Equal(t, ordertype.TakeAway, got)

	s.AcceptTakeaway = false
	got, _ = DefaultOrderType(&s)
	assert.Equal(t, ordertype.DineIn, got)

	s.AcceptDineIn = false
	_, ok = DefaultOrderType(&s)
	assert.False(t, ok)
}

func TestTaxRounding(t *testing.T) {
	assert.Equal(t, int64(765), taxOn(4500, 0.17))
	assert.Equal(t, int64(18), taxOn(101, 0.175)) // 17.675 rounds up
	assert.Equal(t, int64(17), taxOn(100, 0.174)) // 17.4 rounds down
	assert.Zero(t, taxOn(0, 0.17))
	assert.Zero(t, taxOn(1000, 0))
}

func TestNewOrderNumberFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := newOrderNumber()
		assert.True(t, strings.HasPrefix(n, "ORD-"))
		assert.Len(t, n, 12)
		assert.Equal(t, strings.ToUpper(n), n)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}
