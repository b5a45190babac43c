package entities_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
)

func TestParseRole_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected entities.Role
	}{
		{"ADMIN", entities.RoleAdmin},
		{"admin", entities.RoleAdmin},
		{"USER", entities.RoleUser},
		{"user", entities.RoleUser},
	}

	for _, tt := range tests {
		role, err := entities.ParseRole(tt.input)
		if err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", tt.input, err)
			continue
		}
		if role != tt.expected {
			t.Errorf("ParseRole(%q) = %s, expected %s", tt.input, role, tt.expected)
		}
	}
}

func TestParseRole_Invalid(t *testing.T) {
	_, err := entities.ParseRole("SUPERUSER")
	if err == nil {
		t.Fatal("Expected error for unknown role, got nil")
	}
	if !entities.IsKind(err, entities.KindBusiness) {
		t.Errorf("Expected business error kind, got %v", entities.KindOf(err))
	}
}

func TestParseColor_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected entities.Color
	}{
		{"RED", entities.ColorRed},
		{"gray", entities.ColorGray},
		{"Navy", entities.ColorNavy},
	}

	for _, tt := range tests {
		color, err := entities.ParseColor(tt.input)
		if err != nil {
			t.Errorf("ParseColor(%q) returned error: %v", tt.input, err)
			continue
		}
		if color != tt.expected {
			t.Errorf("ParseColor(%q) = %s, expected %s", tt.input, color, tt.expected)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	_, err := entities.ParseColor("CHARTREUSE")
	if err == nil {
		t.Fatal("Expected error for unknown color, got nil")
	}
	if !entities.IsKind(err, entities.KindBusiness) {
		t.Errorf("Expected business error kind, got %v", entities.KindOf(err))
	}
}

func TestColor_Hex(t *testing.T) {
	for _, color := range entities.AllColors {
		if color.Hex() == "" {
			t.Errorf("Color %s has no hex code", color)
		}
	}

	if entities.Color("BOGUS").Hex() != "" {
		t.Error("Expected empty hex code for unknown color")
	}
}

func TestProject_AddAdministratorKeepsMemberSubset(t *testing.T) {
	project := &entities.Project{}
	adminID := uuid.New()

	project.AddAdministrator(adminID)

	if !project.IsAdministrator(adminID) {
		t.Error("Expected user to be an administrator")
	}
	if !project.IsMember(adminID) {
		t.Error("Expected administrator to also be a member")
	}
}

func TestProject_AddMemberIsIdempotent(t *testing.T) {
	project := &entities.Project{}
	userID := uuid.New()

	project.AddMember(userID)
	project.AddMember(userID)

	if len(project.MemberIDs) != 1 {
		t.Errorf("Expected 1 member, got %d", len(project.MemberIDs))
	}
}

func TestProject_AddAdministratorIsIdempotent(t *testing.T) {
	project := &entities.Project{}
	adminID := uuid.New()

	project.AddAdministrator(adminID)
	project.AddAdministrator(adminID)

	if len(project.AdministratorIDs) != 1 {
		t.Errorf("Expected 1 administrator, got %d", len(project.AdministratorIDs))
	}
	if len(project.MemberIDs) != 1 {
		t.Errorf("Expected 1 member, got %d", len(project.MemberIDs))
	}
}

func TestProject_ContainsDate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	project := &entities.Project{StartDate: start, EndDate: end}

	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{"inside range", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"start boundary", start, true},
		{"end boundary", end, true},
		{"before start", start.AddDate(0, 0, -1), false},
		{"after end", end.AddDate(0, 0, 1), false},
	}

	for _, tt := range tests {
		if got := project.ContainsDate(tt.date); got != tt.expected {
			t.Errorf("%s: ContainsDate(%s) = %t, expected %t", tt.name, tt.date.Format(time.DateOnly), got, tt.expected)
		}
	}
}

func TestLabel_IsDefault(t *testing.T) {
	defaultLabel := &entities.Label{Color: entities.ColorGray}
	if !defaultLabel.IsDefault() {
		t.Error("Expected label without project to be default")
	}

	projectID := int64(7)
	projectLabel := &entities.Label{Color: entities.ColorRed, ProjectID: &projectID}
	if projectLabel.IsDefault() {
		t.Error("Expected project-scoped label not to be default")
	}
}
