package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const genericOrderFailure = "Failed to place order"

type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, order models.OrderSubmission) (*models.OrderConfirmation, error)
}

type CheckoutService struct {
	api      OrderAPI
	session  *Session
	required []string
	now      func() time.Time
	newID    func() string
}

func NewCheckoutService(api OrderAPI, session *Session, requiredFields []string) *CheckoutService {
	return &CheckoutService{
		api:      api,
		session:  session,
		required: requiredFields,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Validate checks the form and cart and returns the items that survive the
// validity filter. Malformed items are dropped rather than failing the order.
func Validate(items []models.LineItem, form models.CheckoutForm, required []string) ([]models.OrderItem, error) {
	var missing []string
	for _, field := range required {
		if strings.TrimSpace(form[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Message: "Required fields are missing", Fields: missing}
	}

	if len(items) == 0 {
		return nil, &models.ValidationError{Message: "Cart is empty!"}
	}

	normalized := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		item = item.Trimmed()
		if !item.Valid() {
			continue
		}
		normalized = append(normalized, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.Decimal.Round(2).InexactFloat64(),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	if len(normalized) == 0 {
		return nil, &models.ValidationError{Message: "Cart items are invalid!"}
	}

	return normalized, nil
}

// OrderTotal sums the normalized items in decimal and rounds to cents.
func OrderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// Submit sends a prepared order. It needs a bearer token and never retries.
func (s *CheckoutService) Submit(ctx context.Context, order models.OrderSubmission) (*models.OrderConfirmation, error) {
	token := s.session.Token()
	if token == "" {
		return nil, models.ErrAuthRequired
	}

	conf, err := s.api.CreateOrder(ctx, token, order)
	if err != nil {
		var authErr *models.AuthError
		if errors.As(err, &authErr) {
			return nil, err
		}
		log.Printf("[Checkout] order %s rejected: %v", order.OrderID, err)
		return nil, &models.NetworkError{
			StatusCode: statusOf(err),
			Message:    models.UserMessage(err, genericOrderFailure),
			Err:        err,
		}
	}

	if conf == nil {
		conf = &models.OrderConfirmation{}
	}
	if conf.OrderID == "" {
		conf.OrderID = order.OrderID
	}
	if conf.Status == "" {
		conf.Status = order.Status
	}
	return conf, nil
}

// Checkout runs the whole flow: auth check, validation, submission, and
// clearing the cart once the backend accepts the order. Every call tags the
// order with a fresh id, so a retry after an ambiguous failure can create a
// duplicate order.
func (s *CheckoutService) Checkout(ctx context.Context, cart *Cart, form models.CheckoutForm) (*models.OrderConfirmation, error) {
	if s.session.Token() == "" {
		return nil, models.ErrAuthRequired
	}

	items, err := Validate(cart.Items(), form, s.required)
	if err != nil {
		return nil, err
	}

	order := models.OrderSubmission{
		OrderID:     s.newID(),
		Items:       items,
		FullName:    orNotProvided(form[models.FieldFullName]),
		Email:       orNotProvided(form[models.FieldEmail]),
		Phone:       orNotProvided(form[models.FieldPhone]),
		Address:     orNotProvided(form[models.FieldAddress]),
		Total:       OrderTotal(items).InexactFloat64(),
		Status:      models.OrderStatusPending,
		SubmittedAt: s.now().UTC(),
	}

	conf, err := s.Submit(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	cart.Clear()
	log.Printf("[Checkout] order %s placed, %d item(s), total %.2f", order.OrderID, len(items), order.Total)
	return conf, nil
}

func orNotProvided(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return models.NotProvided
}

func statusOf(err error) int {
	var netErr *models.NetworkError
	if errors.As(err, &netErr) {
		return netErr.StatusCode
	}
	return 0
}
