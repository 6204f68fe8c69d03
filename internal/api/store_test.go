package api_test

import (
	"context"
	"errors"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/testutil"
)

// unwrappedErrorStore returns a plain error, not a StoreError, from the PIN lookup
type unwrappedErrorStore struct {
	testutil.FailingStore
}

func (u *unwrappedErrorStore) FindByPIN(context.Context, model.AdminID, string) ([]model.Admin, error) {
	return nil, errors.New("unexpected state")
}
