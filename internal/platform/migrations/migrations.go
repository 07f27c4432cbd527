package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the orders bounded context. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderLineRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter. The Details association
// is declared here so AutoMigrate emits the foreign key with ON DELETE
// CASCADE; a bare column tag would not produce one.
type orderRecord struct {
	ID         int64             `gorm:"primaryKey;column:id"`
	ProductIDs pq.StringArray    `gorm:"column:product_ids;type:text[]"`
	Details    []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;index"`
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
