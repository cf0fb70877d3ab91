package web

import (
	"errors"
	"net/http"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
)

// StatusFor picks the status code of a page rendered after err.
func StatusFor(err error) int {
	var (
		verr    *domain.ValidationError
		httpErr *apiclient.HTTPError
		netErr  *apiclient.NetworkError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &httpErr):
		if httpErr.Status >= 400 && httpErr.Status < 500 {
			return httpErr.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
