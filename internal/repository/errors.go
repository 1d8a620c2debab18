package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"lab-portal/internal/common"
)

// translate maps gorm sentinels onto the application's error set.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return common.ErrAlreadyExists
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a case-insensitive LIKE pattern for use with
// "LOWER(col) LIKE ? ESCAPE '!'".
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
