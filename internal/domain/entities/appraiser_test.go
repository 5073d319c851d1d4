package entities

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func TestNormalizeAppraiserID(t *testing.T) {
	if got := NormalizeAppraiserID("  apr-007 "); got != "APR-007" {
		t.Fatalf("expected APR-007 got %q", got)
	}
}

func TestAppraiser_InGallery(t *testing.T) {
	a := &Appraiser{Status: IdentityStatusRegistered}
	if a.InGallery() {
		t.Fatal("appraiser without embedding must not be matchable")
	}

	a.FaceEncoding = null.StringFrom("[0.1,0.2]")
	if !a.InGallery() {
		t.Fatal("registered appraiser with embedding must be matchable")
	}

	a.Status = IdentityStatus("draft")
	if a.InGallery() {
		t.Fatal("non registered rows must not be matchable")
	}

	a.Status = IdentityStatusRegistered
	a.FaceEncoding = null.StringFrom("  ")
	if a.HasFaceEncoding() {
		t.Fatal("blank encoding is not an embedding")
	}
}

func TestAppraiser_PrimaryTenant(t *testing.T) {
	a := &Appraiser{BankID: null.Int64From(1)}
	if _, ok := a.PrimaryTenant(); ok {
		t.Fatal("bank without branch is not a complete tenant")
	}

	a.BranchID = null.Int64From(10)
	ref, ok := a.PrimaryTenant()
	if !ok || ref.BankID != 1 || ref.BranchID != 10 {
		t.Fatalf("unexpected primary tenant %+v ok=%v", ref, ok)
	}
	if !a.HasPrimaryTenant(1, 10) || a.HasPrimaryTenant(1, 11) {
		t.Fatal("HasPrimaryTenant mismatch")
	}
}
