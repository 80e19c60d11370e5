package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

type checkoutTestContext struct {
	calc   *checkout.Calculator
	snap   checkout.Snapshot
	result *checkout.Result
	err    error
}

func (c *checkoutTestContext) reset() {
	c.calc = checkout.NewCalculator()
	c.snap = checkout.Snapshot{}
	c.result = nil
	c.err = nil
}

func (c *checkoutTestContext) theMenuItemPricedAt(id, name string, price int) error {
	c.snap.Menu = append(c.snap.Menu, entity.MenuItem{ID: id, Name: name, Price: int64(price)})
	return nil
}

func (c *checkoutTestContext) thePaymentMethodWithFee(id string, fee int, settles string) error {
	c.snap.PaymentMethods = append(c.snap.PaymentMethods, entity.PaymentMethod{
		ID:      id,
		Name:    id,
		Fee:     int64(fee),
		Instant: settles == "instantly",
	})
	return nil
}

func (c *checkoutTestContext) thePromoWorth(state, code string, percent int) error {
	c.snap.Promos = append(c.snap.Promos, entity.Promo{
		Code:            code,
		DiscountPercent: int64(percent),
		Active:          state == "active",
	})
	return nil
}

func (c *checkoutTestContext) checksOut(name, phone string, qty int, menuID, method string) error {
	return c.checksOutWithPromo(name, phone, qty, menuID, method, "")
}

func (c *checkoutTestContext) checksOutWithPromo(name, phone string, qty int, menuID, method, promo string) error {
	c.result, c.err = c.calc.Compute(checkout.Request{
		Customer:        entity.Customer{Name: name, Phone: phone},
		PaymentMethodID: method,
		PromoCode:       promo,
		Items:           []entity.CartLine{{MenuID: menuID, Qty: qty}},
	}, c.snap)
	return nil
}

func (c *checkoutTestContext) order() (*entity.Order, error) {
	if c.err != nil {
		return nil, fmt.Errorf("expected an order but got error: %v", c.err)
	}
	return &c.result.Order, nil
}

func (c *checkoutTestContext) orderAmountIs(field string, want int) error {
	o, err := c.order()
	if err != nil {
		return err
	}
	var got int64
	switch field {
	case "subtotal":
		got = o.Subtotal
	case "discount":
		got = o.Discount
	case "fee":
		got = o.Fee
	case "total":
		got = o.Total
	default:
		return fmt.Errorf("unknown order field %q", field)
	}
	if got != int64(want) {
		return fmt.Errorf("expected %s %d, got %d", field, want, got)
	}
	return nil
}

func (c *checkoutTestContext) thePaymentAmountEqualsTheOrderTotal() error {
	o, err := c.order()
	if err != nil {
		return err
	}
	if c.result.Payment.Amount != o.Total {
		return fmt.Errorf("payment amount %d != order total %d", c.result.Payment.Amount, o.Total)
	}
	return nil
}

func (c *checkoutTestContext) thePaymentStatusIs(status string) error {
	if _, err := c.order(); err != nil {
		return err
	}
	if got := string(c.result.Payment.Status); got != status {
		return fmt.Errorf("expected payment status %q, got %q", status, got)
	}
	return nil
}

func (c *checkoutTestContext) theOrderRecordsPromo(code string) error {
	o, err := c.order()
	if err != nil {
		return err
	}
	if o.PromoCode == nil || *o.PromoCode != code {
		return fmt.Errorf("expected promo %q on the order, got %v", code, o.PromoCode)
	}
	return nil
}

var sentinels = map[string]error{
	"invalid cart":           checkout.ErrInvalidCart,
	"invalid customer":       checkout.ErrInvalidCustomer,
	"unknown menu item":      checkout.ErrUnknownMenuItem,
	"unknown payment method": checkout.ErrUnknownPaymentMethod,
}

func (c *checkoutTestContext) theCheckoutFailsWith(kind string) error {
	want, ok := sentinels[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if c.err == nil {
		return errors.New("expected checkout to fail")
	}
	if !errors.Is(c.err, want) {
		return fmt.Errorf("expected %v, got %v", want, c.err)
	}
	return nil
}

func (c *checkoutTestContext) noOrderOrPaymentIsProduced() error {
	if c.result != nil {
		return fmt.Errorf("expected no records, got order %s", c.result.Order.ID)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the menu item "([^"]*)" "([^"]*)" priced at (\d+)$`, tc.theMenuItemPricedAt)
	ctx.Step(`^the payment method "([^"]*)" with fee (\d+) that settles (instantly|later)$`, tc.thePaymentMethodWithFee)
	ctx.Step(`^the (active|inactive) promo "([^"]*)" worth (\d+) percent$`, tc.thePromoWorth)

	ctx.Step(`^"([^"]*)" with phone "([^"]*)" checks out (\d+) of "([^"]*)" paying with "([^"]*)"$`, tc.checksOut)
	ctx.Step(`^"([^"]*)" with phone "([^"]*)" checks out (\d+) of "([^"]*)" paying with "([^"]*)" using promo "([^"]*)"$`, tc.checksOutWithPromo)

	ctx.Step(`^the order (subtotal|discount|fee|total) is (\d+)$`, tc.orderAmountIs)
	ctx.Step(`^the payment amount equals the order total$`, tc.thePaymentAmountEqualsTheOrderTotal)
	ctx.Step(`^the payment status is "([^"]*)"$`, tc.thePaymentStatusIs)
	ctx.Step(`^the order records promo "([^"]*)"$`, tc.theOrderRecordsPromo)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, tc.theCheckoutFailsWith)
	ctx.Step(`^no order or payment is produced$`, tc.noOrderOrPaymentIsProduced)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
