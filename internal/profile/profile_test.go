package profile

import "testing"

func TestDefaultProfile(t *testing.T) {
	p := Default()

	if p.Name == "" {
		t.Error("embedded profile missing name")
	}
	if len(p.Education) == 0 {
		t.Error("embedded profile missing education")
	}
	if p.Experience.CurrentRole == "" {
		t.Error("embedded profile missing current role")
	}
	if len(p.Positions) == 0 {
		t.Error("embedded profile missing work history")
	}
	if len(p.Strengths) == 0 {
		t.Error("embedded profile missing strengths")
	}
}

func TestDefaultIsStable(t *testing.T) {
	first := Default()
	second := Default()
	if first.Name != second.Name || len(first.Positions) != len(second.Positions) {
		t.Error("Default must return the same profile every call")
	}
}

func TestLoad(t *testing.T) {
	p, err := Load([]byte(`{"name":"Test Candidate","experience":{"total_admin_years":5}}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Name != "Test Candidate" || p.Experience.TotalAdminYears != 5 {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := Load([]byte(`{"education":[]}`)); err == nil {
		t.Error("expected error for profile without a name")
	}
}
