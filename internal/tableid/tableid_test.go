package tableid

import "testing"

func TestNewIsValid(t *testing.T) {
	id := New()
	if err := Validate(id); err != nil {
		t.Errorf("Validate(%q) = %v", id, err)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "0123456789abcdef"},
		{name: "too short", id: "abc", wantErr: true},
		{name: "bad character", id: "0123456789abcdeu", wantErr: true},
		{name: "uppercase", id: "0123456789ABCDEF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
