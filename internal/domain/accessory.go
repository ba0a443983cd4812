package domain

import "time"

type AccessoryCategory string

const (
	AccessoryCategoryHelmet AccessoryCategory = "helmet"
	AccessoryCategoryLock   AccessoryCategory = "lock"
	AccessoryCategoryLight  AccessoryCategory = "light"
	AccessoryCategoryPump   AccessoryCategory = "pump"
	AccessoryCategoryBag    AccessoryCategory = "bag"
	AccessoryCategoryOther  AccessoryCategory = "other"
)

// Accessory is a catalog item that can be attached to a rental. Attribute
// storage only; accessories never affect availability.
type Accessory struct {
	ID             int32             `json:"id"`
	Reference      string            `json:"reference"`
	Name           string            `json:"name"`
	Category       AccessoryCategory `json:"category"`
	SalePriceCents int32             `json:"sale_price_cents"`
	StockQuantity  int32             `json:"stock_quantity"`
	Active         bool              `json:"active"`
	CreatedOn      time.Time         `json:"created_on"`
}
