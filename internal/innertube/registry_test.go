package innertube

import "testing"

func TestRegistryGetNormalizesName(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name     string
		wantName string
		wantOK   bool
	}{
		{"android", "ANDROID", true},
		{"  Android ", "ANDROID", true},
		{"WEB", "WEB", true},
		{"ios", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := reg.Get(tt.name)
		if ok != tt.wantOK {
			t.Fatalf("Get(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
		if got.Name != tt.wantName {
			t.Fatalf("Get(%q).Name = %q, want %q", tt.name, got.Name, tt.wantName)
		}
	}
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("All() len = %d, want 2", len(all))
	}

	all[0].Name = "MUTATED"
	fresh, _ := reg.Get(all[0].ID)
	if fresh.Name == "MUTATED" {
		t.Fatalf("All() must not expose registry backing storage")
	}
}
