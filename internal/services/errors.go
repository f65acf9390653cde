package services

import (
	"errors"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
)

// translateStorage keeps not-found and duplicates visible to callers and
// hides every other storage error behind common.ErrorInternal.
func translateStorage(err error) error {
	err = dbx.Translate(err)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.ErrorAlreadyExists
	}
	return common.ErrorInternal
}
