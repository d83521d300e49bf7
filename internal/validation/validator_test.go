package validation

import (
	"testing"

	"ojoto/internal/types"
)

type signup struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Phone    string `json:"phone_number" validate:"omitempty,phone"`
	Password string `json:"password" validate:"notblank,min=6"`
}

func TestStructReportsFirstFailingField(t *testing.T) {
	tests := []struct {
		name string
		in   signup
		want string
	}{
		{"blank name first", signup{Name: "  ", Email: "bad"}, "name is required"},
		{"bad email", signup{Name: "Ada", Email: "not-an-email", Password: "secret1"}, "email must be a valid email address"},
		{"bad phone", signup{Name: "Ada", Email: "ada@example.com", Phone: "12ab", Password: "secret1"}, "phone_number must be a valid phone number"},
		{"short password", signup{Name: "Ada", Email: "ada@example.com", Password: "abc"}, "password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if !types.IsValidation(err) {
				t.Fatalf("expected validation error, got %T", err)
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestStructValid(t *testing.T) {
	in := signup{Name: "Ada", Email: "ada@example.com", Phone: "+2348012345678", Password: "secret1"}
	if err := Struct(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVarCoordinates(t *testing.T) {
	if err := Var("origin_lat", 6.45, "latitude"); err != nil {
		t.Errorf("valid latitude rejected: %v", err)
	}
	err := Var("origin_lat", 95.0, "latitude")
	if err == nil || err.Error() != "origin_lat must be a valid latitude (-90 to 90)" {
		t.Errorf("unexpected error: %v", err)
	}
	err = Var("dest_lng", -181.5, "longitude")
	if err == nil || err.Error() != "dest_lng must be a valid longitude (-180 to 180)" {
		t.Errorf("unexpected error: %v", err)
	}
}
