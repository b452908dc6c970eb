package services

import (
	"testing"
	"time"

	"food_delivery/internal/models"
)

func mustZones(t *testing.T, zones map[string]models.ZoneConfig) []byte {
	t.Helper()
	raw, err := models.EncodeZones(zones)
	if err != nil {
		t.Fatalf("EncodeZones: %v", err)
	}
	return raw
}

func mustHours(t *testing.T, wh *models.WorkingHours) []byte {
	t.Helper()
	raw, err := models.EncodeWorkingHours(wh)
	if err != nil {
		t.Fatalf("EncodeWorkingHours: %v", err)
	}
	return raw
}

func defaultSettings(t *testing.T) *models.DeliverySettings {
	t.Helper()
	return &models.DeliverySettings{
		BaseDeliveryCost:      150,
		FreeDeliveryThreshold: 2000,
		DeliveryTimeMin:       30,
		DeliveryTimeMax:       60,
		IsDeliveryAvailable:   true,
		MaxProductsPerOrder:   50,
		DeliveryZones: mustZones(t, map[string]models.ZoneConfig{
			"zone_1": {Name: "Центр", Cost: 100, FreeDeliveryThreshold: 1500, DeliveryTime: "20-40 мин", Radius: 3},
			"zone_2": {Name: "Окраина", Cost: 250, DeliveryTime: "40-70 мин", Radius: 10},
		}),
	}
}

func TestComputeQuote(t *testing.T) {
	settings := defaultSettings(t)

	tests := []struct {
		name     string
		amount   float64
		zone     string
		wantCost float64
		wantFree bool
	}{
		{"base cost below threshold", 500, "", 150, false},
		{"free above global threshold", 2500, "", 0, true},
		{"free exactly at threshold", 2000, "", 0, true},
		{"zone cost below zone threshold", 500, "zone_1", 100, false},
		{"zone threshold overrides global", 1600, "zone_1", 0, true},
		{"zone without own threshold uses global", 1600, "zone_2", 250, false},
		{"unknown zone falls back to base", 500, "zone_99", 150, false},
		{"zero amount", 0, "", 150, false},
	}
	for _, tt := range tests {
		quote := computeQuote(settings, tt.amount, tt.zone)
		if quote.DeliveryCost != tt.wantCost {
			t.Errorf("%s: cost = %g, want %g", tt.name, quote.DeliveryCost, tt.wantCost)
		}
		if quote.IsFreeDelivery != tt.wantFree {
			t.Errorf("%s: is_free = %v, want %v", tt.name, quote.IsFreeDelivery, tt.wantFree)
		}
		if quote.OrderAmount != tt.amount {
			t.Errorf("%s: order amount echoed wrong: %g", tt.name, quote.OrderAmount)
		}
	}
}

func TestComputeQuoteDeliveryTime(t *testing.T) {
	settings := defaultSettings(t)
	quote := computeQuote(settings, 500, "")
	if quote.DeliveryTime != "30-60 мин" {
		t.Errorf("delivery time = %q, want %q", quote.DeliveryTime, "30-60 мин")
	}
}

func TestComputeQuoteThresholdField(t *testing.T) {
	settings := defaultSettings(t)

	quote := computeQuote(settings, 500, "")
	if quote.FreeDeliveryThreshold == nil || *quote.FreeDeliveryThreshold != 2000 {
		t.Errorf("global threshold not reported: %+v", quote.FreeDeliveryThreshold)
	}

	quote = computeQuote(settings, 500, "zone_1")
	if quote.FreeDeliveryThreshold == nil || *quote.FreeDeliveryThreshold != 1500 {
		t.Errorf("zone threshold not reported: %+v", quote.FreeDeliveryThreshold)
	}

	settings.FreeDeliveryThreshold = 0
	quote = computeQuote(settings, 10000, "")
	if quote.IsFreeDelivery {
		t.Error("zero threshold must disable free delivery")
	}
	if quote.FreeDeliveryThreshold != nil {
		t.Errorf("zero threshold must be omitted, got %g", *quote.FreeDeliveryThreshold)
	}
}

func TestComputeQuoteUnavailable(t *testing.T) {
	for _, settings := range []*models.DeliverySettings{
		nil,
		{IsDeliveryAvailable: false, BaseDeliveryCost: 150},
	} {
		quote := computeQuote(settings, 500, "zone_1")
		if quote.DeliveryCost != 0 || !quote.IsFreeDelivery {
			t.Errorf("unavailable quote = cost %g free %v, want 0/true", quote.DeliveryCost, quote.IsFreeDelivery)
		}
		if quote.DeliveryTime != "Доставка недоступна" {
			t.Errorf("unavailable label = %q", quote.DeliveryTime)
		}
	}
}

func TestComputeQuoteIdempotent(t *testing.T) {
	settings := defaultSettings(t)
	first := computeQuote(settings, 1600, "zone_1")
	second := computeQuote(settings, 1600, "zone_1")
	if first.DeliveryCost != second.DeliveryCost ||
		first.IsFreeDelivery != second.IsFreeDelivery ||
		first.DeliveryTime != second.DeliveryTime {
		t.Errorf("same inputs produced different quotes: %+v vs %+v", first, second)
	}
}

func TestAvailableAt(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := func(hh, mm int) time.Time {
		return time.Date(2026, 1, 5, hh, mm, 0, 0, time.UTC)
	}

	schedule := &models.WorkingHours{Days: map[string]models.DayHours{
		"monday": {Enabled: true, Start: "09:00", End: "21:00"},
		"sunday": {Enabled: false},
	}}

	tests := []struct {
		name     string
		settings *models.DeliverySettings
		now      time.Time
		want     bool
	}{
		{"nil settings", nil, monday(12, 0), false},
		{
			"kill switch off",
			&models.DeliverySettings{IsDeliveryAvailable: false},
			monday(12, 0), false,
		},
		{
			"no schedule configured",
			&models.DeliverySettings{IsDeliveryAvailable: true},
			monday(3, 0), true,
		},
		{
			"24/7",
			&models.DeliverySettings{
				IsDeliveryAvailable:  true,
				DeliveryWorkingHours: mustHours(t, &models.WorkingHours{Is247: true}),
			},
			monday(3, 0), true,
		},
		{
			"inside window",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			monday(12, 0), true,
		},
		{
			"window start inclusive",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			monday(9, 0), true,
		},
		{
			"window end inclusive",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			monday(21, 0), true,
		},
		{
			"before window",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			monday(8, 59), false,
		},
		{
			"after window",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			monday(21, 1), false,
		},
		{
			"disabled day",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC), false, // Sunday
		},
		{
			"day absent from schedule",
			&models.DeliverySettings{IsDeliveryAvailable: true, DeliveryWorkingHours: mustHours(t, schedule)},
			time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC), true, // Tuesday
		},
		{
			"malformed time opens the day",
			&models.DeliverySettings{
				IsDeliveryAvailable: true,
				DeliveryWorkingHours: mustHours(t, &models.WorkingHours{Days: map[string]models.DayHours{
					"monday": {Enabled: true, Start: "garbage", End: "21:00"},
				}}),
			},
			monday(3, 0), true,
		},
		{
			"malformed schedule opens",
			&models.DeliverySettings{
				IsDeliveryAvailable:  true,
				DeliveryWorkingHours: []byte("{broken"),
			},
			monday(3, 0), true,
		},
	}
	for _, tt := range tests {
		if got := availableAt(tt.settings, tt.now); got != tt.want {
			t.Errorf("%s: availableAt = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// fakeSettingsRepo keeps the single settings row in memory.
type fakeSettingsRepo struct {
	settings *models.DeliverySettings
	updates  int
}

func (f *fakeSettingsRepo) GetCurrent() (*models.DeliverySettings, error) { return f.settings, nil }

func (f *fakeSettingsRepo) Create(s *models.DeliverySettings) error {
	f.settings = s
	return nil
}

func (f *fakeSettingsRepo) Update(s *models.DeliverySettings) error {
	f.settings = s
	f.updates++
	return nil
}

func TestZoneCRUD(t *testing.T) {
	repo := &fakeSettingsRepo{settings: defaultSettings(t)}
	svc := NewDeliveryService(repo, nil, 0)

	name := "Новый район"
	cost := 200.0
	created, err := svc.CreateZone(ZoneInput{Name: &name, Cost: &cost})
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	if created.ID != "zone_3" {
		t.Errorf("created zone id = %q, want zone_3", created.ID)
	}
	if created.DeliveryTime != "30-60 мин" || created.Radius != 5 {
		t.Errorf("create defaults not applied: %+v", created.ZoneConfig)
	}

	newCost := 300.0
	updated, err := svc.UpdateZone("zone_3", ZoneInput{Cost: &newCost})
	if err != nil {
		t.Fatalf("UpdateZone: %v", err)
	}
	if updated.Cost != 300 {
		t.Errorf("updated cost = %g, want 300", updated.Cost)
	}
	if updated.Name != name {
		t.Errorf("unset fields must keep old values, name = %q", updated.Name)
	}

	if _, err := svc.UpdateZone("zone_99", ZoneInput{}); err != ErrZoneNotFound {
		t.Errorf("UpdateZone unknown id: err = %v, want ErrZoneNotFound", err)
	}

	if err := svc.DeleteZone("zone_3"); err != nil {
		t.Fatalf("DeleteZone: %v", err)
	}
	if err := svc.DeleteZone("zone_3"); err != ErrZoneNotFound {
		t.Errorf("DeleteZone twice: err = %v, want ErrZoneNotFound", err)
	}

	zones, err := svc.GetZones()
	if err != nil {
		t.Fatalf("GetZones: %v", err)
	}
	if len(zones) != 2 {
		t.Errorf("zones after delete = %d, want 2", len(zones))
	}
}

func TestZoneCRUDWithoutSettings(t *testing.T) {
	svc := NewDeliveryService(&fakeSettingsRepo{}, nil, 0)

	if _, err := svc.CreateZone(ZoneInput{}); err != ErrSettingsNotFound {
		t.Errorf("CreateZone: err = %v, want ErrSettingsNotFound", err)
	}
	if _, err := svc.UpdateZone("zone_1", ZoneInput{}); err != ErrSettingsNotFound {
		t.Errorf("UpdateZone: err = %v, want ErrSettingsNotFound", err)
	}
	if err := svc.DeleteZone("zone_1"); err != ErrSettingsNotFound {
		t.Errorf("DeleteZone: err = %v, want ErrSettingsNotFound", err)
	}
}

func TestUpdateSettingsMerge(t *testing.T) {
	repo := &fakeSettingsRepo{settings: defaultSettings(t)}
	svc := NewDeliveryService(repo, nil, 0)

	base := 200.0
	settings, err := svc.UpdateSettings(SettingsPatch{BaseDeliveryCost: &base}, 7)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if settings.BaseDeliveryCost != 200 {
		t.Errorf("base cost = %g, want 200", settings.BaseDeliveryCost)
	}
	if settings.FreeDeliveryThreshold != 2000 {
		t.Errorf("untouched threshold changed: %g", settings.FreeDeliveryThreshold)
	}
	if settings.CreatedBy != 7 {
		t.Errorf("created_by = %d, want 7", settings.CreatedBy)
	}

	// An empty patch must not wipe the stored zones.
	if len(models.DecodeZones(settings.DeliveryZones)) != 2 {
		t.Error("patch without zones clobbered the stored zones")
	}
}

func TestUpdateSettingsCreatesRow(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewDeliveryService(repo, nil, 0)

	available := false
	settings, err := svc.UpdateSettings(SettingsPatch{IsDeliveryAvailable: &available}, 1)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if settings.BaseDeliveryCost != 150 || settings.FreeDeliveryThreshold != 2000 {
		t.Errorf("created row missing defaults: %+v", settings)
	}
	if settings.IsDeliveryAvailable {
		t.Error("patched flag not applied on create")
	}
	if repo.settings == nil {
		t.Fatal("settings row was not persisted")
	}
}
