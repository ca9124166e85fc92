package models

import "time"

type Author string

const (
	AuthorCustomer Author = "customer"
	AuthorAdmin    Author = "admin"
)

type ChatMessage struct {
	ID              string    `json:"_id"`
	GuestID         string    `json:"guestId"`
	Sender          Author    `json:"sender"`
	CustomerName    string    `json:"customerName"`
	Message         string    `json:"message"`
	ClientMessageID string    `json:"clientMessageId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`

	// Pending marks a local echo not yet observed in the server log.
	Pending bool `json:"-"`
}

func (m ChatMessage) DisplayName() string {
	if m.Sender == AuthorAdmin {
		return "Admin"
	}
	return m.CustomerName
}

type ChatPostRequest struct {
	CustomerName    string `json:"customerName" binding:"required"`
	GuestID         string `json:"guestId" binding:"required"`
	Message         string `json:"message" binding:"required"`
	ClientMessageID string `json:"clientMessageId,omitempty"`
}

type AdminReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

type AdminStats struct {
	Users int `json:"users"`
	Chats int `json:"chats"`
}
