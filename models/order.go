package models

import "time"

const (
	OrderStatusPending = "pending"

	// NotProvided fills optional contact fields left blank at checkout.
	NotProvided = "Not provided"
)

// OrderItem is the normalized snapshot of a LineItem sent to the backend.
type OrderItem struct {
	ProductID string  `json:"productID"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type OrderSubmission struct {
	OrderID     string      `json:"orderId"`
	Items       []OrderItem `json:"items"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	Total       float64     `json:"total"`
	Status      string      `json:"status"`
	SubmittedAt time.Time   `json:"submittedAt"`
}

type OrderConfirmation struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CheckoutForm holds the contact fields keyed the way the checkout form names them.
type CheckoutForm map[string]string

const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldAddress  = "address"
)
