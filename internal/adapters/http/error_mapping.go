package httpadapter

import (
	"net/http"

	"github.com/agrischeme/backend/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrSchemeNotFound), domain.IsKind(err, domain.ErrImportNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrDuplicateName):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrTemporary), domain.IsKind(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
