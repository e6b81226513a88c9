package domain

import "testing"

func TestShipmentHasStatus(t *testing.T) {
	tests := []struct {
		status string
		query  string
		want   bool
	}{
		{"delivered", StatusDelivered, true},
		{"Delivered", StatusDelivered, true},
		{"DELAYED", StatusDelayed, true},
		{" delayed ", StatusDelayed, false},
		{"shipped", StatusDelivered, false},
		{"", StatusPending, false},
	}

	for _, tt := range tests {
		s := &Shipment{Status: tt.status}
		if got := s.HasStatus(tt.query); got != tt.want {
			t.Errorf("HasStatus(%q) on %q = %v, want %v", tt.query, tt.status, got, tt.want)
		}
	}
}

func TestShipmentRouteLabel(t *testing.T) {
	name := "Lagos → Abuja"
	empty := ""

	if got := (&Shipment{RouteName: &name}).RouteLabel(); got != name {
		t.Fatalf("RouteLabel = %q, want %q", got, name)
	}
	if got := (&Shipment{}).RouteLabel(); got != UnknownRoute {
		t.Fatalf("nil route: RouteLabel = %q, want %q", got, UnknownRoute)
	}
	if got := (&Shipment{RouteName: &empty}).RouteLabel(); got != UnknownRoute {
		t.Fatalf("empty route: RouteLabel = %q, want %q", got, UnknownRoute)
	}
}
