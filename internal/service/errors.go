package service

import (
	"log"

	"clientbook/internal/apperr"
)

// storeFailure logs the raw store error and returns the domain sentinel
// that callers see instead.
func storeFailure(sentinel *apperr.Error, component, op string, err error) error {
	if apperr.KindOf(err) == apperr.KindUnknown {
		log.Printf("[%s] %s failed: %v", component, op, err)
	}
	return apperr.Wrap(sentinel, component+"."+op, err)
}
