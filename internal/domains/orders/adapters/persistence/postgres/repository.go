package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle and is expected to have run the schema migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID int64 `gorm:"primaryKey;column:id"`
	// ProductIDs denormalizes the distinct referenced products so the
	// referenced-by-product lookup is a single ANY() scan instead of a join.
	ProductIDs pq.StringArray    `gorm:"column:product_ids;type:text[]"`
	Details    []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID string          `gorm:"column:product_id;index"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(18,4)"`
	Quantity  int             `gorm:"column:quantity"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

func newOrderRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:         order.ID,
		ProductIDs: pq.StringArray(order.ProductIDs()),
		Details:    make([]orderLineRecord, 0, len(order.Details)),
	}
	for _, line := range order.Details {
		record.Details = append(record.Details, orderLineRecord{
			ID:        line.ID,
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return record
}

func toOrder(record *orderRecord) *domain.Order {
	order := &domain.Order{
		ID:        record.ID,
		Details:   make([]domain.OrderLine, 0, len(record.Details)),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	for _, line := range record.Details {
		order.Details = append(order.Details, domain.OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return order
}

// Create inserts the order and its lines, returning backend-assigned ids.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("cannot create nil order")
	}
	record := newOrderRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID loads one order with lines in insertion order.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var record orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Details", orderedLines).
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toOrder(&record), nil
}

// List pages through orders in ascending id order and reports the total.
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]*domain.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Details", orderedLines).
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toOrder(&records[i]))
	}
	return orders, total, nil
}

// FindByProductID returns any order whose denormalized product set contains
// the id, nil when the product appears in no order.
func (r *Repository) FindByProductID(ctx context.Context, productID string) (*domain.Order, error) {
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Details", orderedLines).
		Where("? = ANY(product_ids)", productID).
		Order("id ASC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toOrder(&record), nil
}

// Update replaces the line items and the denormalized product set in one
// transaction.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("cannot update nil order")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing orderRecord
		if err := tx.First(&existing, "id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&orderLineRecord{}).Error; err != nil {
			return err
		}
		record := newOrderRecord(order)
		for i := range record.Details {
			record.Details[i].ID = 0
		}
		if err := tx.Create(&record.Details).Error; err != nil {
			return err
		}
		return tx.Model(&orderRecord{ID: order.ID}).
			Updates(map[string]any{
				"product_ids": record.ProductIDs,
				"updated_at":  gorm.Expr("NOW()"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// Delete removes the order and its lines in one transaction.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&orderRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&orderLineRecord{}).Error
	})
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("order_lines.id ASC")
}
