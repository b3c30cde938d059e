package tracking

import (
	"package-tracker-service/workers/tracking/repositories"
	"time"
)

const (
	apiName = "17track"

	// Free tier: 100 registrations per month. Polling calls are unlimited
	// and never counted.
	registrationLimit  = 100
	registrationWarnAt = 95
)

// QuotaManager enforces the monthly cap on registration calls. The counter
// is only advanced after a confirmed accepted registration (or an
// "already registered" rejection), so failed attempts never consume quota.
type QuotaManager struct {
	repo *repositories.Repository
	now  func() time.Time
}

func NewQuotaManager(repo *repositories.Repository) *QuotaManager {
	return &QuotaManager{repo: repo, now: time.Now}
}

func (q *QuotaManager) month() string {
	return q.now().UTC().Format("2006-01")
}

func (q *QuotaManager) UsedThisMonth() (int, error) {
	return q.repo.RegistrationsUsed(apiName, q.month())
}

func (q *QuotaManager) Increment() error {
	return q.repo.IncrementRegistrations(apiName, q.month())
}
