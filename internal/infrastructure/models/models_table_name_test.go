package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (Appraiser{}).TableName(); got != "appraisers" {
		t.Fatalf("unexpected Appraiser table name: %s", got)
	}
	if got := (AuthorizationMapping{}).TableName(); got != "appraiser_bank_branch_map" {
		t.Fatalf("unexpected AuthorizationMapping table name: %s", got)
	}
	if got := (Bank{}).TableName(); got != "banks" {
		t.Fatalf("unexpected Bank table name: %s", got)
	}
	if got := (Branch{}).TableName(); got != "branches" {
		t.Fatalf("unexpected Branch table name: %s", got)
	}
	if got := len(All()); got != 4 {
		t.Fatalf("unexpected model count: %d", got)
	}
}
