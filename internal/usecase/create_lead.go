package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

// DefaultNotifyTimeout bounds each notifier call.
const DefaultNotifyTimeout = 30 * time.Second

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	log logrus.FieldLogger,
	notifiers ...LeadNotifier,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:          repo,
		Notifiers:     notifiers,
		NotifyTimeout: DefaultNotifyTimeout,
		NewID:         NewID,
		Now:           Now,
		Log:           log,
	}
}

// Execute validates the payload, inserts the lead as "nuevo" and returns the
// row as read back from the store.
//
// The INSERT and the SELECT are two statements without a transaction. The id
// is fresh, so no other request can touch the row in between.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, payload map[string]any) (*entity.Lead, error) {
	input, err := ValidateCreateLead(payload)
	if err != nil {
		return nil, err
	}

	lead := entity.NewLead(
		uc.NewID(),
		input.Name,
		input.Email,
		input.PropertyLocation,
		input.PropertyType,
		input.Phone,
		input.Urgency,
		uc.Now(),
	)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &StoreError{Op: "create lead", Err: err}
	}

	stored, err := uc.Repo.FindByID(ctx, lead.ID)
	if err != nil {
		return nil, &StoreError{Op: "read back lead", Err: fmt.Errorf("lead %s: %w", lead.ID, err)}
	}

	uc.notify(ctx, stored)

	return stored, nil
}

// notify runs every notifier in its own goroutine so a slow SMTP server or
// broker never holds the response. Failures never undo or fail the request:
// the lead is already stored and the back office can still find it in
// GET /leads.
func (uc *CreateLeadUseCase) notify(ctx context.Context, lead *entity.Lead) {
	timeout := uc.NotifyTimeout
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}

	for _, n := range uc.Notifiers {
		if n == nil {
			continue
		}

		uc.pending.Add(1)
		go func(n LeadNotifier) {
			defer uc.pending.Done()

			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
			defer cancel()

			if err := n.NotifyLeadCreated(nctx, lead); err != nil && uc.Log != nil {
				uc.Log.WithError(err).
					WithField("lead_id", lead.ID).
					WithField("notifier", fmt.Sprintf("%T", n)).
					Warn("lead stored but notification failed")
			}
		}(n)
	}
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (uc *CreateLeadUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
