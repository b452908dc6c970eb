package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"food_delivery/internal/models"
	"food_delivery/internal/redis"
	"food_delivery/internal/repository"
)

// DeliveryQuote is the answer to "what does delivery cost for this order".
type DeliveryQuote struct {
	OrderAmount           float64  `json:"order_amount"`
	DeliveryZone          string   `json:"delivery_zone,omitempty"`
	DeliveryCost          float64  `json:"delivery_cost"`
	IsFreeDelivery        bool     `json:"is_free_delivery"`
	DeliveryTime          string   `json:"delivery_time"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold,omitempty"`
}

// ZoneInput carries zone fields for create/update. Nil fields are omitted
// and fall back to the existing value (update) or the default (create).
type ZoneInput struct {
	Name                  *string  `json:"name"`
	Cost                  *float64 `json:"cost"`
	MinOrderAmount        *float64 `json:"min_order_amount"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold"`
	DeliveryTime          *string  `json:"delivery_time"`
	Radius                *float64 `json:"radius"`
}

// ZoneView is a zone together with its map key.
type ZoneView struct {
	ID string `json:"id"`
	models.ZoneConfig
}

// SettingsPatch is a partial update of the delivery settings record.
type SettingsPatch struct {
	BaseDeliveryCost      *float64                     `json:"base_delivery_cost"`
	FreeDeliveryThreshold *float64                     `json:"free_delivery_threshold"`
	DeliveryZones         map[string]models.ZoneConfig `json:"delivery_zones"`
	DeliveryTimeMin       *int                         `json:"delivery_time_min"`
	DeliveryTimeMax       *int                         `json:"delivery_time_max"`
	IsDeliveryAvailable   *bool                        `json:"is_delivery_available"`
	DeliveryWorkingHours  *models.WorkingHours         `json:"delivery_working_hours"`
	MaxProductsPerOrder   *int                         `json:"max_products_per_order"`
}

type DeliveryService interface {
	GetSettings() (*models.DeliverySettings, error)
	CalculateDeliveryCost(orderAmount float64, deliveryZone string) (*DeliveryQuote, error)
	IsDeliveryAvailableNow() (bool, error)
	GetZones() (map[string]models.ZoneConfig, error)
	CreateZone(input ZoneInput) (*ZoneView, error)
	UpdateZone(zoneID string, input ZoneInput) (*ZoneView, error)
	DeleteZone(zoneID string) error
	UpdateSettings(patch SettingsPatch, adminID uint) (*models.DeliverySettings, error)
	GetWorkingHours() (*models.WorkingHours, error)
	UpdateWorkingHours(wh *models.WorkingHours, adminID uint) error
}

type deliveryService struct {
	settingsRepo repository.DeliverySettingsRepository
	cache        *redis.Client
	cacheTTL     time.Duration
}

func NewDeliveryService(settingsRepo repository.DeliverySettingsRepository, cache *redis.Client, cacheTTL time.Duration) DeliveryService {
	return &deliveryService{settingsRepo: settingsRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *deliveryService) GetSettings() (*models.DeliverySettings, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCachedSettings(); err == nil && cached != nil {
			return cached, nil
		}
	}

	settings, err := s.settingsRepo.GetCurrent()
	if err != nil {
		return nil, err
	}

	if settings != nil && s.cache != nil {
		if err := s.cache.CacheSettings(settings, s.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache delivery settings: %v", err)
		}
	}
	return settings, nil
}

func (s *deliveryService) invalidateCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSettings(); err != nil {
		log.Printf("Warning: failed to invalidate settings cache: %v", err)
	}
}

func (s *deliveryService) CalculateDeliveryCost(orderAmount float64, deliveryZone string) (*DeliveryQuote, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	return computeQuote(settings, orderAmount, deliveryZone), nil
}

// computeQuote is pure over the settings snapshot and its two inputs.
//
// When settings are missing or the global kill-switch is off it reports
// cost 0 with is_free_delivery=true; callers must check availability
// separately before treating a zero-cost quote as a real price.
func computeQuote(settings *models.DeliverySettings, orderAmount float64, deliveryZone string) *DeliveryQuote {
	if settings == nil || !settings.IsDeliveryAvailable {
		return &DeliveryQuote{
			OrderAmount:    orderAmount,
			DeliveryZone:   deliveryZone,
			DeliveryCost:   0,
			IsFreeDelivery: true,
			DeliveryTime:   "Доставка недоступна",
		}
	}

	zones := models.DecodeZones(settings.DeliveryZones)

	// A zone with its own nonzero threshold overrides the global one.
	threshold := settings.FreeDeliveryThreshold
	if deliveryZone != "" {
		if zone, ok := zones[deliveryZone]; ok && zone.FreeDeliveryThreshold > 0 {
			threshold = zone.FreeDeliveryThreshold
		}
	}

	// A zero threshold disables free delivery entirely.
	isFree := threshold > 0 && orderAmount >= threshold

	var cost float64
	if !isFree {
		cost = settings.BaseDeliveryCost
		if deliveryZone != "" {
			if zone, ok := zones[deliveryZone]; ok {
				cost = zone.Cost
			}
		}
	}

	quote := &DeliveryQuote{
		OrderAmount:    orderAmount,
		DeliveryZone:   deliveryZone,
		DeliveryCost:   cost,
		IsFreeDelivery: isFree,
		DeliveryTime:   fmt.Sprintf("%d-%d мин", settings.DeliveryTimeMin, settings.DeliveryTimeMax),
	}
	if threshold > 0 {
		quote.FreeDeliveryThreshold = &threshold
	}
	return quote
}

func (s *deliveryService) IsDeliveryAvailableNow() (bool, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return false, err
	}
	return availableAt(settings, time.Now()), nil
}

// availableAt checks the working-hours schedule at the given local time.
//
// A missing or malformed schedule, and a weekday absent from the day
// table, resolve to available: a misconfigured settings row must not
// block customer ordering.
func availableAt(settings *models.DeliverySettings, now time.Time) bool {
	if settings == nil || !settings.IsDeliveryAvailable {
		return false
	}

	wh, ok := models.DecodeWorkingHours(settings.DeliveryWorkingHours)
	if !ok {
		return true
	}
	if wh.Is247 {
		return true
	}

	day := strings.ToLower(now.Weekday().String())
	dayHours, ok := wh.Days[day]
	if !ok {
		return true
	}
	if !dayHours.Enabled {
		return false
	}

	start, err := time.Parse("15:04", dayHours.Start)
	if err != nil {
		return true
	}
	end, err := time.Parse("15:04", dayHours.End)
	if err != nil {
		return true
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	return nowMinutes >= startMinutes && nowMinutes <= endMinutes
}

func (s *deliveryService) GetZones() (map[string]models.ZoneConfig, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return map[string]models.ZoneConfig{}, nil
	}
	return models.DecodeZones(settings.DeliveryZones), nil
}

func (s *deliveryService) CreateZone(input ZoneInput) (*ZoneView, error) {
	settings, err := s.settingsRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}

	zones := models.DecodeZones(settings.DeliveryZones)

	// Count-based ids are kept for compatibility with existing rows;
	// after a delete, a new zone can be assigned a previously used id.
	zoneID := fmt.Sprintf("zone_%d", len(zones)+1)

	zone := models.ZoneConfig{
		Name:                  stringOr(input.Name, ""),
		Cost:                  floatOr(input.Cost, 0),
		MinOrderAmount:        floatOr(input.MinOrderAmount, 0),
		FreeDeliveryThreshold: floatOr(input.FreeDeliveryThreshold, 0),
		DeliveryTime:          stringOr(input.DeliveryTime, "30-60 мин"),
		Radius:                floatOr(input.Radius, 5),
	}
	zones[zoneID] = zone

	if err := s.saveZones(settings, zones); err != nil {
		return nil, err
	}
	return &ZoneView{ID: zoneID, ZoneConfig: zone}, nil
}

func (s *deliveryService) UpdateZone(zoneID string, input ZoneInput) (*ZoneView, error) {
	settings, err := s.settingsRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}

	zones := models.DecodeZones(settings.DeliveryZones)
	existing, ok := zones[zoneID]
	if !ok {
		return nil, ErrZoneNotFound
	}

	zone := models.ZoneConfig{
		Name:                  stringOr(input.Name, existing.Name),
		Cost:                  floatOr(input.Cost, existing.Cost),
		MinOrderAmount:        floatOr(input.MinOrderAmount, existing.MinOrderAmount),
		FreeDeliveryThreshold: floatOr(input.FreeDeliveryThreshold, existing.FreeDeliveryThreshold),
		DeliveryTime:          stringOr(input.DeliveryTime, existing.DeliveryTime),
		Radius:                floatOr(input.Radius, existing.Radius),
	}
	zones[zoneID] = zone

	if err := s.saveZones(settings, zones); err != nil {
		return nil, err
	}
	return &ZoneView{ID: zoneID, ZoneConfig: zone}, nil
}

func (s *deliveryService) DeleteZone(zoneID string) error {
	settings, err := s.settingsRepo.GetCurrent()
	if err != nil {
		return err
	}
	if settings == nil {
		return ErrSettingsNotFound
	}

	zones := models.DecodeZones(settings.DeliveryZones)
	if _, ok := zones[zoneID]; !ok {
		return ErrZoneNotFound
	}
	delete(zones, zoneID)

	return s.saveZones(settings, zones)
}

func (s *deliveryService) saveZones(settings *models.DeliverySettings, zones map[string]models.ZoneConfig) error {
	encoded, err := models.EncodeZones(zones)
	if err != nil {
		return err
	}
	settings.DeliveryZones = encoded
	if err := s.settingsRepo.Update(settings); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *deliveryService) UpdateSettings(patch SettingsPatch, adminID uint) (*models.DeliverySettings, error) {
	settings, err := s.settingsRepo.GetCurrent()
	if err != nil {
		return nil, err
	}

	created := false
	if settings == nil {
		settings = &models.DeliverySettings{
			BaseDeliveryCost:      150,
			FreeDeliveryThreshold: 2000,
			DeliveryTimeMin:       30,
			DeliveryTimeMax:       60,
			IsDeliveryAvailable:   true,
			MaxProductsPerOrder:   50,
		}
		created = true
	}

	if patch.BaseDeliveryCost != nil {
		settings.BaseDeliveryCost = *patch.BaseDeliveryCost
	}
	if patch.FreeDeliveryThreshold != nil {
		settings.FreeDeliveryThreshold = *patch.FreeDeliveryThreshold
	}
	// Stored zones are never clobbered by an empty patch value.
	if len(patch.DeliveryZones) > 0 {
		encoded, err := models.EncodeZones(patch.DeliveryZones)
		if err != nil {
			return nil, err
		}
		settings.DeliveryZones = encoded
	}
	if patch.DeliveryTimeMin != nil {
		settings.DeliveryTimeMin = *patch.DeliveryTimeMin
	}
	if patch.DeliveryTimeMax != nil {
		settings.DeliveryTimeMax = *patch.DeliveryTimeMax
	}
	if patch.IsDeliveryAvailable != nil {
		settings.IsDeliveryAvailable = *patch.IsDeliveryAvailable
	}
	if patch.DeliveryWorkingHours != nil {
		encoded, err := models.EncodeWorkingHours(patch.DeliveryWorkingHours)
		if err != nil {
			return nil, err
		}
		settings.DeliveryWorkingHours = encoded
	}
	if patch.MaxProductsPerOrder != nil {
		settings.MaxProductsPerOrder = *patch.MaxProductsPerOrder
	}
	settings.CreatedBy = adminID

	if created {
		err = s.settingsRepo.Create(settings)
	} else {
		err = s.settingsRepo.Update(settings)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return settings, nil
}

func (s *deliveryService) GetWorkingHours() (*models.WorkingHours, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.WorkingHours{Days: map[string]models.DayHours{}}, nil
	}
	wh, ok := models.DecodeWorkingHours(settings.DeliveryWorkingHours)
	if !ok {
		return &models.WorkingHours{Days: map[string]models.DayHours{}}, nil
	}
	return wh, nil
}

func (s *deliveryService) UpdateWorkingHours(wh *models.WorkingHours, adminID uint) error {
	_, err := s.UpdateSettings(SettingsPatch{DeliveryWorkingHours: wh}, adminID)
	return err
}

func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
