package repositories

import (
	"fmt"

	"tripbook/internal/domain"
)

func errTripNotFound(id int64) error {
	return domain.NotFoundError{Resource: fmt.Sprintf("trip %d", id)}
}
