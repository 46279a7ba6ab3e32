package models

import (
	"time"

	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "Completed"
	TransactionCancelled TransactionStatus = "Cancelled"
	TransactionRefunded  TransactionStatus = "Refunded"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentCard    PaymentMethod = "Card"
	PaymentEWallet PaymentMethod = "E-Wallet"
)

type Transaction struct {
	gorm.Model
	ReceiptNumber   string            `gorm:"uniqueIndex;not null" json:"receipt_number"`
	UserID          uint              `gorm:"index" json:"user_id"`
	TransactionDate time.Time         `gorm:"index" json:"transaction_date"`
	PaymentMethod   PaymentMethod     `gorm:"not null" json:"payment_method"`
	TotalAmount     float64           `json:"total_amount"`
	AmountPaid      float64           `json:"amount_paid"`
	ChangeDue       float64           `json:"change_due"`
	Status          TransactionStatus `gorm:"index;not null" json:"status"`
	Remarks         string            `json:"remarks,omitempty"`
	Items           []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

type TransactionItem struct {
	gorm.Model
	TransactionID uint    `gorm:"index" json:"transaction_id"`
	ProductID     uint    `gorm:"index" json:"product_id"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
}
