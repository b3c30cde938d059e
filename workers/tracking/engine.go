package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"package-tracker-service/workers/tracking/carriers"
	"package-tracker-service/workers/tracking/models"
	"package-tracker-service/workers/tracking/repositories"
	"package-tracker-service/workers/tracking/seventeentrack"
	"strconv"
	"strings"
	"time"
)

// Engine ties the store, the quota manager and the 17track client together.
// All operations are synchronous; the remote API call is the only blocking
// step and carries the client's request timeout.
type Engine struct {
	logger *zap.Logger
	repo   *repositories.Repository
	client *seventeentrack.Client
	quota  *QuotaManager
	now    func() time.Time
}

func NewEngine(logger *zap.Logger, repo *repositories.Repository, client *seventeentrack.Client) *Engine {
	return &Engine{
		logger: logger,
		repo:   repo,
		client: client,
		quota:  NewQuotaManager(repo),
		now:    time.Now,
	}
}

// AddResult reports what happened to a single add.
type AddResult struct {
	ID             uint
	TrackingNumber string
	Carrier        string
	Reactivated    bool
	Registered     bool
	TrackingURL    string
	Warning        string
}

// AddPackage starts tracking a number. Re-adding a deactivated number
// reactivates the same row and its history. Registration with the provider
// is attempted once; a transport or configuration failure still saves the
// package locally with registered=false, while an explicit rejection (other
// than "already registered") saves nothing.
func (e *Engine) AddPackage(trackingNumber, description, carrierOverride string) (*AddResult, error) {
	tn := normalizeTrackingNumber(trackingNumber)
	if tn == "" {
		return nil, ErrEmptyTrackingNumber
	}

	existing, err := e.repo.FindByTrackingNumber(tn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Active {
			return nil, fmt.Errorf("%s: %w", tn, ErrAlreadyTracked)
		}
		existing.Active = true
		if err := e.repo.SavePackage(existing); err != nil {
			return nil, err
		}
		e.logger.Info("Package reactivated", zap.String("tracking_number", tn))
		return &AddResult{
			ID:             existing.ID,
			TrackingNumber: tn,
			Carrier:        existing.Carrier,
			Reactivated:    true,
			Registered:     existing.Registered,
			TrackingURL:    carriers.TrackingURL(tn, existing.Carrier),
		}, nil
	}

	carrier, carrierCode := carriers.Detect(tn)
	if carrierOverride != "" {
		carrier = carrierOverride
	}

	used, err := e.quota.UsedThisMonth()
	if err != nil {
		return nil, err
	}
	if used >= registrationLimit {
		return nil, fmt.Errorf("%w (%d/%d this month)", ErrQuotaExceeded, used, registrationLimit)
	}
	var warning string
	if used >= registrationWarnAt {
		warning = fmt.Sprintf("%d/%d registrations used this month", used, registrationLimit)
	}

	registered := false
	var rawResponse []byte

	resp, err := e.client.Register(tn, carrierCode)
	switch {
	case err == nil:
		rawResponse, _ = json.Marshal(resp)
		if len(resp.Data.Accepted) > 0 {
			registered = true
			if resp.Data.Accepted[0].Carrier != 0 {
				carrierCode = resp.Data.Accepted[0].Carrier
			}
		} else if len(resp.Data.Rejected) > 0 {
			rejection := resp.Data.Rejected[0]
			if rejection.Error.Code != seventeentrack.AlreadyRegisteredCode {
				return nil, &RegistrationRejectedError{
					Code:    rejection.Error.Code,
					Message: rejection.Error.Message,
				}
			}
			registered = true
		}
		if registered {
			if err := e.quota.Increment(); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, seventeentrack.ErrMissingAPIKey):
		e.logger.Warn("17track registration skipped, API key not configured",
			zap.String("tracking_number", tn),
		)
		warning = appendWarning(warning, "not registered with 17track, configure the API key and re-add")
	default:
		e.logger.Warn("17track registration failed, package saved locally",
			zap.String("tracking_number", tn),
			zap.Error(err),
		)
		warning = appendWarning(warning, "17track registration failed, will retry on a later add")
	}

	pkg := &models.Package{
		TrackingNumber: tn,
		Carrier:        carrier,
		CarrierCode:    carrierCode,
		Description:    description,
		Status:         StatusPending,
		RawResponse:    rawResponse,
		Registered:     registered,
		Active:         true,
	}
	if err := e.repo.CreatePackage(pkg); err != nil {
		return nil, err
	}

	e.logger.Info("Package added",
		zap.String("tracking_number", tn),
		zap.String("carrier", carrier),
		zap.Bool("registered", registered),
	)

	return &AddResult{
		ID:             pkg.ID,
		TrackingNumber: tn,
		Carrier:        carrier,
		Registered:     registered,
		TrackingURL:    carriers.TrackingURL(tn, carrier),
		Warning:        warning,
	}, nil
}

// CheckUpdates runs one check cycle over the active packages, or over a
// single package when packageID is non-zero. An empty selection returns an
// empty result. Any provider failure aborts the whole cycle before a single
// write happens; all writes commit in one transaction.
func (e *Engine) CheckUpdates(packageID uint) ([]Update, error) {
	var packages []models.Package
	var err error
	if packageID != 0 {
		packages, err = e.repo.GetActivePackageByID(packageID)
	} else {
		packages, err = e.repo.GetActivePackages()
	}
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return nil, nil
	}

	numbers := make([]string, len(packages))
	byNumber := make(map[string]*models.Package, len(packages))
	for i := range packages {
		numbers[i] = packages[i].TrackingNumber
		byNumber[packages[i].TrackingNumber] = &packages[i]
	}

	resp, err := e.client.GetTrackInfo(numbers)
	if err != nil {
		e.logger.Error("Tracking info fetch failed, aborting check cycle",
			zap.Int("packages", len(packages)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch tracking info: %w", err)
	}

	now := e.now().UTC()
	var updates []Update

	err = e.repo.Transaction(func(tx *repositories.Repository) error {
		for _, item := range resp.Data.Accepted {
			// The provider may return numbers we no longer track.
			pkg, known := byNumber[item.Number]
			if !known {
				continue
			}
			update, err := e.applyTrackItem(tx, pkg, item, now)
			if err != nil {
				return err
			}
			if update != nil {
				updates = append(updates, *update)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updates, nil
}

// applyTrackItem reconciles one provider item against the stored package:
// new events are appended, the package row is updated, and an Update is
// returned when the status changed or new history appeared.
func (e *Engine) applyTrackItem(tx *repositories.Repository, pkg *models.Package, item seventeentrack.TrackItem, now time.Time) (*Update, error) {
	statusCode := item.Track.LatestStatus
	newStatus := StatusForCode(statusCode)
	oldStatus := pkg.Status

	fetched := make([]Event, 0, len(item.Track.Provider.Events))
	for _, ev := range item.Track.Provider.Events {
		fetched = append(fetched, Event{
			Date:        ev.Date,
			Location:    ev.Location,
			Description: ev.Description,
		})
	}

	stored, err := tx.GetEventsForPackage(pkg.ID)
	if err != nil {
		return nil, err
	}
	fresh := diffEvents(fetched, stored)

	if len(fresh) > 0 {
		rows := make([]models.TrackingEvent, 0, len(fresh))
		for _, ev := range fresh {
			rows = append(rows, models.TrackingEvent{
				PackageID:   pkg.ID,
				EventDate:   ev.Date,
				Location:    ev.Location,
				Description: ev.Description,
				StatusCode:  strconv.Itoa(statusCode),
			})
		}
		if err := tx.CreateEvents(rows); err != nil {
			return nil, err
		}
	}

	pkg.Status = newStatus
	pkg.LastCheckedAt = &now
	if raw, err := json.Marshal(item); err == nil {
		pkg.RawResponse = raw
	}

	var latest *Event
	if len(fetched) > 0 {
		latest = &fetched[0]
		pkg.LastEvent = latest.Description
		pkg.LastEventDate = latest.Date
	}

	if statusCode == deliveredStatusCode {
		if pkg.DeliveredAt == nil {
			delivered := now
			pkg.DeliveredAt = &delivered
		}
		pkg.Active = false
	}

	if err := tx.SavePackage(pkg); err != nil {
		return nil, err
	}

	if newStatus == oldStatus && len(fresh) == 0 {
		return nil, nil
	}

	return &Update{
		TrackingNumber: pkg.TrackingNumber,
		Description:    pkg.Description,
		Carrier:        pkg.Carrier,
		OldStatus:      oldStatus,
		NewStatus:      newStatus,
		LatestEvent:    latest,
		NewEventsCount: len(fresh),
		TrackingURL:    carriers.TrackingURL(pkg.TrackingNumber, pkg.Carrier),
	}, nil
}

// ListPackages returns tracked packages, active ones first.
func (e *Engine) ListPackages(activeOnly bool) ([]models.Package, error) {
	return e.repo.ListPackages(activeOnly)
}

// RemovePackage deactivates a package. History is kept; nothing is deleted.
func (e *Engine) RemovePackage(trackingNumber string) error {
	tn := normalizeTrackingNumber(trackingNumber)
	if tn == "" {
		return ErrEmptyTrackingNumber
	}

	pkg, err := e.repo.FindByTrackingNumber(tn)
	if err != nil {
		return err
	}
	if pkg == nil {
		return fmt.Errorf("%s: %w", tn, ErrNotFound)
	}
	if !pkg.Active {
		return fmt.Errorf("%s: %w", tn, ErrAlreadyInactive)
	}

	pkg.Active = false
	if err := e.repo.SavePackage(pkg); err != nil {
		return err
	}

	e.logger.Info("Package deactivated", zap.String("tracking_number", tn))
	return nil
}

// PackageDetails is a package with its full event history.
type PackageDetails struct {
	Package     models.Package
	Events      []models.TrackingEvent
	TrackingURL string
}

func (e *Engine) GetDetails(trackingNumber string) (*PackageDetails, error) {
	tn := normalizeTrackingNumber(trackingNumber)
	if tn == "" {
		return nil, ErrEmptyTrackingNumber
	}

	pkg, err := e.repo.FindByTrackingNumber(tn)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, fmt.Errorf("%s: %w", tn, ErrNotFound)
	}

	events, err := e.repo.GetEventsForPackage(pkg.ID)
	if err != nil {
		return nil, err
	}

	return &PackageDetails{
		Package:     *pkg,
		Events:      events,
		TrackingURL: carriers.TrackingURL(tn, pkg.Carrier),
	}, nil
}

// QuotaInfo combines the local registration counter with the provider's own
// quota payload. A remote failure is reported in RemoteError; the local
// numbers are still returned.
type QuotaInfo struct {
	Month                  string
	RegistrationLimit      int
	RegistrationsUsed      int
	RegistrationsRemaining int
	Remote                 json.RawMessage
	RemoteError            string
}

func (e *Engine) Quota() (*QuotaInfo, error) {
	used, err := e.quota.UsedThisMonth()
	if err != nil {
		return nil, err
	}

	remaining := registrationLimit - used
	if remaining < 0 {
		remaining = 0
	}

	info := &QuotaInfo{
		Month:                  e.quota.month(),
		RegistrationLimit:      registrationLimit,
		RegistrationsUsed:      used,
		RegistrationsRemaining: remaining,
	}

	raw, err := e.client.GetQuota()
	if err != nil {
		info.RemoteError = err.Error()
	} else {
		info.Remote = raw
	}

	return info, nil
}

func normalizeTrackingNumber(trackingNumber string) string {
	return strings.ToUpper(strings.TrimSpace(trackingNumber))
}

func appendWarning(existing, warning string) string {
	if existing == "" {
		return warning
	}
	return existing + "; " + warning
}
