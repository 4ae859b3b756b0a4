package identity

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"administrator", RoleAdministrator, false},
		{"technician", RoleTechnician, false},
		{"viewer", RoleViewer, false},
		{"root", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRole) {
					t.Errorf("err = %v, want ErrInvalidRole", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseRole = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCanMutate(t *testing.T) {
	if !RoleAdministrator.CanMutate() || !RoleTechnician.CanMutate() {
		t.Error("administrator and technician must be allowed to mutate")
	}
	if RoleViewer.CanMutate() {
		t.Error("viewer must not be allowed to mutate")
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStatic(RoleTechnician)
	if p.Role() != RoleTechnician {
		t.Errorf("Role = %s, want technician", p.Role())
	}
}
