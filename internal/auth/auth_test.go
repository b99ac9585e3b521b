package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAuth_RoundTrip(t *testing.T) {
	a, err := New("test-key", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	userID, companyID := uuid.New(), uuid.New()
	token, err := a.GenerateToken(userID, companyID, RoleEmployee)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserId != userID || claims.CompanyId != companyID || claims.Role != RoleEmployee {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestAuth_Rejects(t *testing.T) {
	a, _ := New("test-key", time.Hour)
	other, _ := New("other-key", time.Hour)

	token, err := other.GenerateToken(uuid.New(), uuid.New(), RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := a.ValidateToken(token); err == nil {
		t.Error("Expected token signed with another key to be rejected")
	}

	expired, _ := New("test-key", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _ = expired.GenerateToken(uuid.New(), uuid.New(), RoleAdmin)
	if _, err := a.ValidateToken(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}

	if _, err := New("", time.Hour); err == nil {
		t.Error("Expected empty key to be rejected")
	}
}

func TestClaims_CanRead(t *testing.T) {
	company, otherCompany := uuid.New(), uuid.New()
	self := uuid.New()

	employee := Claims{UserId: self, CompanyId: company, Role: RoleEmployee}
	admin := Claims{UserId: uuid.New(), CompanyId: company, Role: RoleAdmin}

	tests := []struct {
		name    string
		claims  Claims
		worker  uuid.UUID
		company uuid.UUID
		want    bool
	}{
		{"employee self", employee, self, company, true},
		{"employee other", employee, uuid.New(), company, false},
		{"admin same company", admin, uuid.New(), company, true},
		{"admin other company", admin, uuid.New(), otherCompany, false},
	}

	for _, tt := range tests {
		if got := tt.claims.CanRead(tt.worker, tt.company); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestGetClaims(t *testing.T) {
	if _, err := GetClaims(context.Background()); err == nil {
		t.Error("Expected error without claims")
	}

	want := Claims{Role: RoleAdmin}
	got, err := GetClaims(context.WithValue(context.Background(), Key, want))
	if err != nil || got.Role != RoleAdmin {
		t.Errorf("Expected admin claims, got %+v, %v", got, err)
	}
}
