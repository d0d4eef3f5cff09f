package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// --- PG error mapping (pgx/libpq) ---
// ok=false kalau error bukan error constraint yang dikenali.
func MapPGError(err error) (int, string, bool) {
	if err == nil {
		return 0, "", false
	}
	code := ""
	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		code = pgxErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		code = "23505"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		code = "23503"
	}

	switch code {
	case "23505":
		return http.StatusConflict, "duplicate data (unique violation)", true
	case "23503":
		return http.StatusBadRequest, "referenced record not found (FK violation)", true
	case "23514":
		return http.StatusBadRequest, "data violates a check constraint", true
	}
	return 0, "", false
}

// IsUniqueViolation: cek kode 23505 + fallback substring (driver lain, mis. sqlite di test).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if code, _, ok := MapPGError(err); ok && code == http.StatusConflict {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
