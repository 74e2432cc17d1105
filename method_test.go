package routec

import "testing"

func TestParseMethod(t *testing.T) {
	tests := []struct {
		keyword string
		want    Method
		ok      bool
	}{
		{"GET", MethodGet, true},
		{"HEAD", MethodHead, true},
		{"POST", MethodPost, true},
		{"PUT", MethodPut, true},
		{"PATCH", MethodPatch, true},
		{"DELETE", MethodDelete, true},
		{"OPTIONS", MethodOptions, true},
		{"TRACE", MethodTrace, true},
		{"get", 0, false},
		{"FETCH", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			got, ok := ParseMethod(tt.keyword)
			if ok != tt.ok {
				t.Fatalf("ParseMethod(%q) ok = %v, want %v", tt.keyword, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestMethodRoundTrip(t *testing.T) {
	// The keyword/routing-name mapping must be bijective: every method
	// re-parses from its own keyword and has a distinct routing name.
	seen := make(map[string]bool)
	for m := MethodGet; m <= MethodTrace; m++ {
		back, ok := ParseMethod(m.String())
		if !ok || back != m {
			t.Errorf("ParseMethod(%q) = %v, %v; want %v", m.String(), back, ok, m)
		}
		rn := m.RoutingName()
		if seen[rn] {
			t.Errorf("duplicate routing name %q", rn)
		}
		seen[rn] = true
	}
}

func TestMethodRoutingName(t *testing.T) {
	if got := MethodGet.RoutingName(); got != "get" {
		t.Errorf("MethodGet.RoutingName() = %q, want %q", got, "get")
	}
	if got := MethodDelete.RoutingName(); got != "delete" {
		t.Errorf("MethodDelete.RoutingName() = %q, want %q", got, "delete")
	}
	if got := Method(99).String(); got != "invalid" {
		t.Errorf("Method(99).String() = %q, want %q", got, "invalid")
	}
}
