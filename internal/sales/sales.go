package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salespoint/internal/models"
	"gorm.io/gorm"
)

// StockAlerter is notified after a sale leaves a product at or below its
// reorder level. Calls are fire-and-forget.
type StockAlerter interface {
	LowStock(product *models.Product)
}

// Service creates and voids sales. A sale writes the transaction, its
// items, the stock decrements and the stock logs atomically: either the
// whole sale lands or none of it does.
type Service struct {
	db     *gorm.DB
	alerts StockAlerter
}

func NewService(db *gorm.DB, alerts StockAlerter) *Service {
	return &Service{db: db, alerts: alerts}
}

type Item struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type Request struct {
	UserID        uint
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	AmountPaid    float64              `json:"amount_paid"`
	Remarks       string               `json:"remarks"`
	Items         []Item               `json:"items" binding:"required"`
}

func (s *Service) CreateTransaction(req *Request) (*models.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("transaction requires at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}
	}

	var (
		txn      *models.Transaction
		lowStock []models.Product
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := make([]models.Product, 0, len(req.Items))
		var total float64
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d not found", item.ProductID)
			}
			if product.Quantity < item.Quantity {
				return fmt.Errorf("insufficient stock for %s: have %d, need %d",
					product.Name, product.Quantity, item.Quantity)
			}
			products = append(products, product)
			total += product.UnitPrice * float64(item.Quantity)
		}

		txn = &models.Transaction{
			ReceiptNumber:   uuid.NewString(),
			UserID:          req.UserID,
			TransactionDate: time.Now(),
			PaymentMethod:   req.PaymentMethod,
			TotalAmount:     total,
			AmountPaid:      req.AmountPaid,
			ChangeDue:       req.AmountPaid - total,
			Status:          models.TransactionCompleted,
			Remarks:         req.Remarks,
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %v", err)
		}

		for i, item := range req.Items {
			product := products[i]

			line := models.TransactionItem{
				TransactionID: txn.ID,
				ProductID:     product.ID,
				Quantity:      item.Quantity,
				UnitPrice:     product.UnitPrice,
				TotalPrice:    product.UnitPrice * float64(item.Quantity),
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("failed to create transaction item: %v", err)
			}

			previous := product.Quantity
			product.Quantity -= item.Quantity
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("quantity", product.Quantity).Error; err != nil {
				return fmt.Errorf("failed to update stock for %s: %v", product.Name, err)
			}

			stockLog := models.StockLog{
				ProductID:        product.ID,
				UserID:           req.UserID,
				ChangeType:       models.StockChangeSale,
				QuantityChange:   -item.Quantity,
				PreviousQuantity: previous,
				NewQuantity:      product.Quantity,
			}
			if err := tx.Create(&stockLog).Error; err != nil {
				return fmt.Errorf("failed to log stock change: %v", err)
			}

			if product.LowStock() {
				lowStock = append(lowStock, product)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.alerts != nil {
		for i := range lowStock {
			s.alerts.LowStock(&lowStock[i])
		}
	}

	return txn, nil
}

// VoidTransaction refunds a completed transaction and restores its stock.
func (s *Service) VoidTransaction(transactionID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.First(&txn, transactionID).Error; err != nil {
			return fmt.Errorf("transaction %d not found", transactionID)
		}
		if txn.Status != models.TransactionCompleted {
			return fmt.Errorf("transaction %d is already %s", transactionID, txn.Status)
		}

		var items []models.TransactionItem
		if err := tx.Where("transaction_id = ?", transactionID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load transaction items: %v", err)
		}

		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d not found", item.ProductID)
			}

			previous := product.Quantity
			restored := previous + item.Quantity
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("quantity", restored).Error; err != nil {
				return fmt.Errorf("failed to restore stock for %s: %v", product.Name, err)
			}

			stockLog := models.StockLog{
				ProductID:        product.ID,
				UserID:           userID,
				ChangeType:       models.StockChangeRefund,
				QuantityChange:   item.Quantity,
				PreviousQuantity: previous,
				NewQuantity:      restored,
			}
			if err := tx.Create(&stockLog).Error; err != nil {
				return fmt.Errorf("failed to log stock change: %v", err)
			}
		}

		if err := tx.Model(&txn).Update("status", models.TransactionRefunded).Error; err != nil {
			return fmt.Errorf("failed to update transaction status: %v", err)
		}
		return nil
	})
}

// GetTransaction loads a transaction with its items.
func (s *Service) GetTransaction(transactionID uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Preload("Items").First(&txn, transactionID).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
