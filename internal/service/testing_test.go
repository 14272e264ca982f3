package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"sitecms/internal/model"
	revalMocks "sitecms/internal/revalidate/mocks"
)

// fakeAudit is an AuditService double that records calls.
type fakeAudit struct {
	mock.Mock
}

func (f *fakeAudit) Record(ctx context.Context, action, entity, entityID string, details map[string]any) error {
	args := f.Called(ctx, action, entity, entityID, details)
	return args.Error(0)
}

func (f *fakeAudit) List(ctx context.Context, params ListParams) (*ListResult[model.AuditLog], error) {
	args := f.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ListResult[model.AuditLog]), args.Error(1)
}

// testDeps returns Deps whose audit and revalidation calls succeed unless overridden.
func testDeps() (Deps, *fakeAudit, *revalMocks.MockRevalidator) {
	a := new(fakeAudit)
	r := new(revalMocks.MockRevalidator)
	return Deps{Audit: a, Revalidator: r, Logger: zap.NewNop()}, a, r
}

func allowHooks(a *fakeAudit, r *revalMocks.MockRevalidator) {
	a.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	r.On("Revalidate", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func ptr[T any](v T) *T { return &v }
