package entity

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"employee", "Employee", RoleEmployee, false},
		{"manager", "Manager", RoleManager, false},
		{"executive", "Executive", RoleExecutive, false},
		{"lowercase rejected", "employee", 0, true},
		{"unknown rejected", "Admin", 0, true},
		{"empty rejected", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoleOrdering(t *testing.T) {
	if !RoleExecutive.Satisfies(RoleManager) || !RoleManager.Satisfies(RoleEmployee) {
		t.Fatal("role order must be Employee < Manager < Executive")
	}
	if RoleEmployee.Satisfies(RoleManager) {
		t.Fatal("Employee must not satisfy Manager")
	}
	if !RoleManager.Satisfies(RoleManager) {
		t.Fatal("a role satisfies itself")
	}
}

func TestDepartmentMatches(t *testing.T) {
	if !RoleExecutive.DepartmentMatches("management", "finance") {
		t.Error("Executive must match every department")
	}
	if RoleManager.DepartmentMatches("engineering", "finance") {
		t.Error("Manager must not match a foreign department")
	}
	if !RoleEmployee.DepartmentMatches("engineering", "engineering") {
		t.Error("exact department must match")
	}
}
