package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillswap/internal/domain"
)

func TestCertificateIssueAndVerify(t *testing.T) {
	swaps, st, _ := newSwapService(t)
	ctx := context.Background()
	svc := &CertificateService{Store: st, PublicURL: "https://skillswap.example/"}

	if _, err := svc.Issue(ctx, "3", "req2"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("accepted swap: expected invalid transition, got %v", err)
	}

	if _, err := swaps.Complete(ctx, "2", "req2"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if _, err := svc.Issue(ctx, "1", "req2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider: expected forbidden, got %v", err)
	}

	mike, err := svc.Issue(ctx, "3", "req2")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if mike.SkillName != "Graphic Design" || mike.IssuerName != "Sarah Smith" || mike.LearnerName != "Mike Johnson" {
		t.Fatalf("unexpected certificate: %+v", mike)
	}
	if !strings.HasPrefix(mike.Hash, "0x") || len(mike.Hash) != 66 {
		t.Fatalf("hash: %q", mike.Hash)
	}
	if mike.ID != mike.Hash[2:18] {
		t.Fatalf("id: %q", mike.ID)
	}
	if mike.VerificationURL != "https://skillswap.example/v1/certificates/"+mike.Hash {
		t.Fatalf("verification url: %q", mike.VerificationURL)
	}

	sarah, err := svc.Issue(ctx, "2", "req2")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if sarah.SkillName != "Guitar Playing" || sarah.Hash == mike.Hash {
		t.Fatalf("unexpected certificate: %+v", sarah)
	}

	again, err := svc.Issue(ctx, "3", "req2")
	if err != nil || again.Hash != mike.Hash {
		t.Fatalf("issuing twice should be stable: %v", err)
	}

	found, err := svc.Verify(ctx, " "+strings.ToUpper(sarah.Hash[:2])+sarah.Hash[2:]+" ")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if found.LearnerID != "2" || found.SwapRequestID != "req2" {
		t.Fatalf("verified wrong certificate: %+v", found)
	}

	if _, err := svc.Verify(ctx, "0xdeadbeef"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
