package services

import (
	"errors"

	"listener-api/models"

	"gorm.io/gorm"
)

func notFound(entity string) error {
	return models.ErrorNotFound{Message: entity + " not found"}
}

// lookupErr turns a missing row into a 404 for entity and passes any other
// error through.
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

// uniqueErr reports a unique index violation as a 400 with message, for
// writes that lost a race against the pre-insert uniqueness check.
func uniqueErr(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrorBadRequest{Message: message}
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
