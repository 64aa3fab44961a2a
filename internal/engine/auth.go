package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"db-seed/internal/schema"
)

const passwordLength = 10

// Username derives a login name: the lower-cased name with all whitespace removed.
func Username(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "")) + ".username"
}

// HashPassword is the one-way hash stored for a password and compared at login.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DeriveAuth renders the credential artifact for one primary table: one row per
// id/name pair holding the id, a username and the hash of a random password.
// The password itself is discarded.
func DeriveAuth(w Writer, spec schema.AuthSpec, ids, names []string, faker *gofakeit.Faker) (string, error) {
	if len(ids) != len(names) {
		return "", &ValidationError{
			Table:  spec.Table,
			Err:    ErrLengthMismatch,
			Detail: fmt.Sprintf("%d %s values, %d %s values", len(ids), spec.IDColumn, len(names), spec.NameColumn),
		}
	}

	authTable := spec.AuthTable
	if authTable == "" {
		authTable = spec.Table + "Auth"
	}

	rows := make([][]string, len(ids))
	for i := range ids {
		password := faker.Password(true, true, true, false, false, passwordLength)
		rows[i] = []string{ids[i], Username(names[i]), HashPassword(password)}
	}

	cols := []string{
		w.Dialect.QuoteIdent(spec.IDColumn),
		w.Dialect.QuoteIdent("Username"),
		w.Dialect.QuoteIdent("PasswordHash"),
	}
	return w.render(authTable, cols, rows), nil
}
