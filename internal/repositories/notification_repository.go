package repositories

import (
	"errors"
	"math"

	"notification-center/internal/models"

	"gorm.io/gorm"
)

// ErrPageOutOfRange is returned when a feed page outside the valid range is
// requested. Callers map it to their own not-found presentation.
var ErrPageOutOfRange = errors.New("notification page out of range")

// PageInfo carries pagination metadata for a feed page
type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	CreateNotification(actionKey, iconKey string, resourceID *uint, details map[string]interface{}, doer *models.Actor) (*models.Notification, error)
	NotifyUsers(notification *models.Notification, userIDs []uint) (*models.Notification, error)
	MarkAsViewed(viewerRowIDs []uint) error
	CountUnviewed(viewerID uint) (int64, error)
	PageForUser(viewerID uint, page, perPage int) ([]models.NotificationViewer, PageInfo, error)
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// CreateNotification persists one notification. When the details carry no
// "doer" entry and an actor is known, a snapshot of the actor's display info
// is embedded; later profile edits do not change stored notifications.
func (r *PostgresNotificationRepository) CreateNotification(actionKey, iconKey string, resourceID *uint, details map[string]interface{}, doer *models.Actor) (*models.Notification, error) {
	if details == nil {
		details = make(map[string]interface{})
	}

	var doerID *uint
	if doer != nil {
		id := doer.ID
		doerID = &id
		if _, ok := details["doer"]; !ok {
			details["doer"] = map[string]interface{}{
				"id":        doer.ID,
				"firstName": doer.FirstName,
				"lastName":  doer.LastName,
				"avatar":    doer.Avatar,
				"publicUrl": doer.PublicURL,
			}
		}
	}

	notification := models.Notification{
		ActionKey:  actionKey,
		IconKey:    iconKey,
		ResourceID: resourceID,
		UserID:     doerID,
		Details:    details,
	}
	if err := r.db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// NotifyUsers creates one unviewed viewer row per recipient in a single batch
// insert. Zero ids are skipped; an empty recipient list writes nothing.
func (r *PostgresNotificationRepository) NotifyUsers(notification *models.Notification, userIDs []uint) (*models.Notification, error) {
	viewers := make([]models.NotificationViewer, 0, len(userIDs))
	for _, userID := range userIDs {
		if userID == 0 {
			continue
		}
		viewers = append(viewers, models.NotificationViewer{
			NotificationID: notification.ID,
			ViewerID:       userID,
			Status:         false,
		})
	}
	if len(viewers) == 0 {
		return notification, nil
	}
	if err := r.db.Create(&viewers).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAsViewed flips the given viewer rows to viewed. The transition is
// monotonic, so re-marking already-viewed rows is harmless.
func (r *PostgresNotificationRepository) MarkAsViewed(viewerRowIDs []uint) error {
	if len(viewerRowIDs) == 0 {
		return nil
	}
	return r.db.Model(&models.NotificationViewer{}).
		Where("id IN ?", viewerRowIDs).
		Update("status", true).Error
}

// CountUnviewed returns the number of unviewed rows for the user
func (r *PostgresNotificationRepository) CountUnviewed(viewerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.NotificationViewer{}).
		Where("viewer_id = ? AND status = ?", viewerID, false).
		Count(&count).Error
	return count, err
}

// PageForUser returns one page of the user's viewer rows, newest first, with
// the owning notification preloaded. Requesting a page outside the valid
// range fails with ErrPageOutOfRange; page 1 of an empty feed is valid.
func (r *PostgresNotificationRepository) PageForUser(viewerID uint, page, perPage int) ([]models.NotificationViewer, PageInfo, error) {
	var total int64
	if err := r.db.Model(&models.NotificationViewer{}).
		Where("viewer_id = ?", viewerID).
		Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		return nil, PageInfo{}, ErrPageOutOfRange
	}

	var viewers []models.NotificationViewer
	offset := (page - 1) * perPage
	err := r.db.Preload("Notification").
		Where("viewer_id = ?", viewerID).
		Order("id DESC").
		Offset(offset).Limit(perPage).
		Find(&viewers).Error
	if err != nil {
		return nil, PageInfo{}, err
	}

	return viewers, PageInfo{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
