package httpapi

import (
	"net/http"

	"skillswap/internal/domain"
)

func (a *api) handleCertificateIssue(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	cert, err := a.certSvc.Issue(r.Context(), u.ID, r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cert)
}

// handleCertificateVerify is public so a certificate link can be checked by
// anyone holding it.
func (a *api) handleCertificateVerify(w http.ResponseWriter, r *http.Request) {
	cert, err := a.certSvc.Verify(r.Context(), r.PathValue("hash"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cert)
}
