package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

// LeadNotifier is told about every lead that made it into the store.
type LeadNotifier interface {
	NotifyLeadCreated(ctx context.Context, lead *entity.Lead) error
}

type CreateLeadUseCase struct {
	Repo          entity.LeadRepositoryInterface
	Notifiers     []LeadNotifier
	NotifyTimeout time.Duration
	NewID         IDGenerator
	Now           Clock
	Log           logrus.FieldLogger

	pending sync.WaitGroup
}
