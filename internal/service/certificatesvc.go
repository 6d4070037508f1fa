package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

// CertificateService issues completion certificates for swaps. A certificate
// is derived from the completed request, so issuing twice yields the same
// hash and Verify can find it again without storing anything.
type CertificateService struct {
	Store     StateStore
	PublicURL string
}

// Issue returns the certificate for what userID learned in a completed swap.
func (s *CertificateService) Issue(_ context.Context, userID, requestID string) (domain.Certificate, error) {
	state := s.Store.Snapshot()
	req, err := store.FindRequest(state, requestID)
	if err != nil {
		return domain.Certificate{}, err
	}
	if !req.Involves(userID) {
		return domain.Certificate{}, domain.ErrForbidden
	}
	if req.Status != domain.SwapCompleted || req.CompletedAt == nil {
		return domain.Certificate{}, fmt.Errorf("%w: swap request %q is %s, certificates need a completed swap", domain.ErrInvalidTransition, req.ID, req.Status)
	}
	return s.certificate(state, req, userID)
}

// Verify finds the certificate with the given hash.
func (s *CertificateService) Verify(_ context.Context, hash string) (domain.Certificate, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	state := s.Store.Snapshot()
	for _, req := range state.SwapRequests {
		if req.Status != domain.SwapCompleted || req.CompletedAt == nil {
			continue
		}
		for _, learner := range []string{req.FromUserID, req.ToUserID} {
			cert, err := s.certificate(state, req, learner)
			if err != nil {
				return domain.Certificate{}, err
			}
			if cert.Hash == hash {
				return cert, nil
			}
		}
	}
	return domain.Certificate{}, domain.NotFound("certificate", hash)
}

func (s *CertificateService) certificate(state store.State, req domain.SwapRequest, learnerID string) (domain.Certificate, error) {
	issuerID := req.Counterparty(learnerID)
	skill := req.SkillOffered
	if learnerID == req.FromUserID {
		skill = req.SkillRequested
	}

	learner, err := store.FindUser(state, learnerID)
	if err != nil {
		return domain.Certificate{}, err
	}
	issuer, err := store.FindUser(state, issuerID)
	if err != nil {
		return domain.Certificate{}, err
	}

	completedAt := req.CompletedAt.UTC()
	hash := CertificateHash(req.ID, learnerID, issuerID, skill, completedAt)
	cert := domain.Certificate{
		ID:            hash[2:18],
		SwapRequestID: req.ID,
		SkillName:     skill.Name,
		LearnerID:     learnerID,
		LearnerName:   learner.Name,
		IssuerID:      issuerID,
		IssuerName:    issuer.Name,
		CompletedAt:   completedAt,
		Hash:          hash,
	}
	if base := strings.TrimRight(s.PublicURL, "/"); base != "" {
		cert.VerificationURL = base + "/v1/certificates/" + hash
	}
	return cert, nil
}

// CertificateHash is the 0x-prefixed Keccak-256 of the certificate fields.
func CertificateHash(requestID, learnerID, issuerID string, skill domain.Skill, completedAt time.Time) string {
	h := sha3.NewLegacyKeccak256()
	for _, part := range []string{requestID, learnerID, issuerID, skill.ID, skill.Name, completedAt.UTC().Format(time.RFC3339Nano)} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
