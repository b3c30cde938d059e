package repositories

import (
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"package-tracker-service/workers/tracking/models"
)

// Repository is the repo for accessing packages and related data
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository with DB dependency
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.Package{},
		&models.TrackingEvent{},
		&models.UsageCounter{},
	)
}

// Transaction runs fn against a transactional repository. The check cycle
// uses this so event inserts and package updates commit together.
func (r *Repository) Transaction(fn func(*Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// GetActivePackages returns all packages still eligible for check cycles.
func (r *Repository) GetActivePackages() ([]models.Package, error) {
	var packages []models.Package
	err := r.db.Where("active = ?", true).Find(&packages).Error
	return packages, err
}

// GetActivePackageByID returns a zero- or one-element slice; a missing or
// inactive package is an empty selection, not an error.
func (r *Repository) GetActivePackageByID(id uint) ([]models.Package, error) {
	var packages []models.Package
	err := r.db.Where("id = ? AND active = ?", id, true).Find(&packages).Error
	return packages, err
}

// FindByTrackingNumber returns nil without error when no row exists.
func (r *Repository) FindByTrackingNumber(trackingNumber string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.Where("tracking_number = ?", trackingNumber).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) ListPackages(activeOnly bool) ([]models.Package, error) {
	var packages []models.Package
	query := r.db.Order("active DESC, created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&packages).Error
	return packages, err
}

// CreatePackage inserts a new package
func (r *Repository) CreatePackage(pkg *models.Package) error {
	return r.db.Create(pkg).Error
}

// SavePackage creates or updates a package
func (r *Repository) SavePackage(pkg *models.Package) error {
	return r.db.Save(pkg).Error
}

// GetEventsForPackage returns the stored history, newest first.
func (r *Repository) GetEventsForPackage(packageID uint) ([]models.TrackingEvent, error) {
	var events []models.TrackingEvent
	err := r.db.Where("package_id = ?", packageID).
		Order("event_date DESC").
		Find(&events).Error
	return events, err
}

// CreateEvents appends new history rows.
func (r *Repository) CreateEvents(events []models.TrackingEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.Create(&events).Error
}

// RegistrationsUsed returns the month's counter, zero when no row exists yet.
func (r *Repository) RegistrationsUsed(apiName, month string) (int, error) {
	var counter models.UsageCounter
	err := r.db.Where("api_name = ? AND month = ?", apiName, month).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.RegistrationsUsed, nil
}

// IncrementRegistrations upserts the month's counter by one. The unique
// (api_name, month) index keeps concurrent callers from double counting.
func (r *Repository) IncrementRegistrations(apiName, month string) error {
	counter := models.UsageCounter{
		APIName:           apiName,
		Month:             month,
		RegistrationsUsed: 1,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "api_name"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"registrations_used": gorm.Expr("registrations_used + 1"),
		}),
	}).Create(&counter).Error
}
