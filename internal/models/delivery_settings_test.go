package models

import (
	"testing"
)

func TestDecodeZones(t *testing.T) {
	plain := `{"zone_1":{"name":"Центр","cost":100,"free_delivery_threshold":1500,"delivery_time":"20-40 мин","radius":3}}`
	// The same payload stored as a JSON string (double-encoded).
	double := `"{\"zone_1\":{\"name\":\"Центр\",\"cost\":100,\"free_delivery_threshold\":1500,\"delivery_time\":\"20-40 мин\",\"radius\":3}}"`

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty payload", "", 0},
		{"null", "null", 0},
		{"malformed", "{not json", 0},
		{"wrong shape", `[1,2,3]`, 0},
		{"plain object", plain, 1},
		{"double encoded", double, 1},
	}
	for _, tt := range tests {
		zones := DecodeZones([]byte(tt.raw))
		if zones == nil {
			t.Errorf("%s: DecodeZones returned nil map", tt.name)
			continue
		}
		if len(zones) != tt.want {
			t.Errorf("%s: got %d zones, want %d", tt.name, len(zones), tt.want)
		}
	}

	zones := DecodeZones([]byte(double))
	zone, ok := zones["zone_1"]
	if !ok {
		t.Fatal("double-encoded payload lost zone_1")
	}
	if zone.Name != "Центр" || zone.Cost != 100 || zone.FreeDeliveryThreshold != 1500 {
		t.Errorf("unexpected zone fields: %+v", zone)
	}
}

func TestDecodeWorkingHours(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{"empty payload", "", false},
		{"malformed", "{oops", false},
		{"wrong shape", `[true]`, false},
		{"plain object", `{"is24_7":true,"days":{}}`, true},
		{"double encoded", `"{\"is24_7\":false,\"days\":{\"monday\":{\"enabled\":true,\"start\":\"09:00\",\"end\":\"21:00\"}}}"`, true},
	}
	for _, tt := range tests {
		_, ok := DecodeWorkingHours([]byte(tt.raw))
		if ok != tt.wantOK {
			t.Errorf("%s: DecodeWorkingHours ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
	}

	wh, ok := DecodeWorkingHours([]byte(`{"is24_7":true,"days":{}}`))
	if !ok || !wh.Is247 {
		t.Errorf("is24_7 flag not decoded: %+v ok=%v", wh, ok)
	}

	wh, ok = DecodeWorkingHours([]byte(`"{\"is24_7\":false,\"days\":{\"monday\":{\"enabled\":true,\"start\":\"09:00\",\"end\":\"21:00\"}}}"`))
	if !ok {
		t.Fatal("double-encoded working hours not decoded")
	}
	day, found := wh.Days["monday"]
	if !found || !day.Enabled || day.Start != "09:00" || day.End != "21:00" {
		t.Errorf("unexpected monday hours: %+v found=%v", day, found)
	}
}

func TestEncodeDecodeZonesRoundTrip(t *testing.T) {
	in := map[string]ZoneConfig{
		"zone_1": {Name: "Центр", Cost: 120, DeliveryTime: "30-60 мин", Radius: 5},
	}
	raw, err := EncodeZones(in)
	if err != nil {
		t.Fatalf("EncodeZones: %v", err)
	}
	out := DecodeZones(raw)
	if out["zone_1"] != in["zone_1"] {
		t.Errorf("round trip changed the zone: %+v", out["zone_1"])
	}
}

func TestOrderStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{string(OrderPending), "создан"},
		{string(OrderConfirmed), "подтвержден"},
		{string(OrderPreparing), "готовится"},
		{string(OrderDelivering), "в пути"},
		{string(OrderDelivered), "доставлен"},
		{string(OrderCancelled), "отменен"},
		{"unknown_status", "unknown_status"},
	}
	for _, tt := range tests {
		o := Order{Status: tt.status}
		if got := o.StatusLabel(); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestOrderIsTerminal(t *testing.T) {
	for _, status := range []string{string(OrderDelivered), string(OrderCancelled)} {
		o := Order{Status: status}
		if !o.IsTerminal() {
			t.Errorf("IsTerminal(%q) = false, want true", status)
		}
	}
	for _, status := range []string{string(OrderPending), string(OrderConfirmed), string(OrderPreparing), string(OrderDelivering)} {
		o := Order{Status: status}
		if o.IsTerminal() {
			t.Errorf("IsTerminal(%q) = true, want false", status)
		}
	}
}
