package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DeliverySettings is the single evolving delivery configuration record.
// The latest row by creation time is the active one; rows are updated in
// place and never deleted.
type DeliverySettings struct {
	ID                    uint           `json:"id" gorm:"primaryKey"`
	BaseDeliveryCost      float64        `json:"base_delivery_cost" gorm:"default:150"`
	FreeDeliveryThreshold float64        `json:"free_delivery_threshold" gorm:"default:2000"` // 0 disables free delivery
	DeliveryZones         datatypes.JSON `json:"delivery_zones"`
	DeliveryTimeMin       int            `json:"delivery_time_min" gorm:"default:30"`
	DeliveryTimeMax       int            `json:"delivery_time_max" gorm:"default:60"`
	IsDeliveryAvailable   bool           `json:"is_delivery_available" gorm:"default:true"`
	DeliveryWorkingHours  datatypes.JSON `json:"delivery_working_hours"`
	MaxProductsPerOrder   int            `json:"max_products_per_order" gorm:"default:50"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	CreatedBy             uint           `json:"created_by"`
}

// ZoneConfig is one named delivery zone stored inside the zones map.
// A zero FreeDeliveryThreshold means the global threshold applies.
type ZoneConfig struct {
	Name                  string  `json:"name"`
	Cost                  float64 `json:"cost"`
	MinOrderAmount        float64 `json:"min_order_amount"`
	FreeDeliveryThreshold float64 `json:"free_delivery_threshold"`
	DeliveryTime          string  `json:"delivery_time"`
	Radius                float64 `json:"radius"`
}

type DayHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"` // "HH:MM"
	End     string `json:"end"`   // "HH:MM"
}

type WorkingHours struct {
	Is247 bool                `json:"is24_7"`
	Days  map[string]DayHours `json:"days"`
}

// unwrapDoubleEncoded handles the historical encoding bug where JSON
// columns hold a JSON string containing JSON instead of the object itself.
func unwrapDoubleEncoded(raw []byte) []byte {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s)
	}
	return raw
}

// DecodeZones parses the stored zones column into a typed map. Any missing
// or malformed payload decodes to an empty map; reads never fail on
// historical settings data.
func DecodeZones(raw []byte) map[string]ZoneConfig {
	if len(raw) == 0 {
		return map[string]ZoneConfig{}
	}
	raw = unwrapDoubleEncoded(raw)

	zones := map[string]ZoneConfig{}
	if err := json.Unmarshal(raw, &zones); err != nil {
		return map[string]ZoneConfig{}
	}
	return zones
}

// DecodeWorkingHours parses the stored working-hours column. The second
// return value is false when the block is missing or malformed; callers
// treat that as "no schedule configured" and fail open.
func DecodeWorkingHours(raw []byte) (*WorkingHours, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	raw = unwrapDoubleEncoded(raw)

	var wh WorkingHours
	if err := json.Unmarshal(raw, &wh); err != nil {
		return nil, false
	}
	return &wh, true
}

// EncodeZones serializes a zones map back into the settings column.
func EncodeZones(zones map[string]ZoneConfig) (datatypes.JSON, error) {
	data, err := json.Marshal(zones)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// EncodeWorkingHours serializes a working-hours block into the settings column.
func EncodeWorkingHours(wh *WorkingHours) (datatypes.JSON, error) {
	data, err := json.Marshal(wh)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
