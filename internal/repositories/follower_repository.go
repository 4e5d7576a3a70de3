package repositories

import (
	"errors"

	"notification-center/internal/models"

	"gorm.io/gorm"
)

// FollowerRepository defines the interface for follow relation operations
type FollowerRepository interface {
	Follow(userID, resourceID uint, resourceClass string) (*models.FollowerResource, error)
	Unfollow(userID, resourceID uint, resourceClass string) (*models.FollowerResource, error)
	GetFollowerResource(userID, resourceID uint, resourceClass string) (*models.FollowerResource, error)
	FindFollowerIDs(resourceID uint, resourceClass string) ([]uint, error)
}

// PostgresFollowerRepository implements FollowerRepository for PostgreSQL
type PostgresFollowerRepository struct {
	db *gorm.DB
}

// NewPostgresFollowerRepository creates a new PostgresFollowerRepository
func NewPostgresFollowerRepository(db *gorm.DB) *PostgresFollowerRepository {
	return &PostgresFollowerRepository{db: db}
}

// Follow creates a follow relation for the resource. Following the same
// resource twice returns the existing relation instead of a duplicate row;
// the (follower_id, hash) unique index backs this up at the schema level.
func (r *PostgresFollowerRepository) Follow(userID, resourceID uint, resourceClass string) (*models.FollowerResource, error) {
	relation := models.FollowerResource{
		FollowerID:    userID,
		ResourceID:    resourceID,
		ResourceClass: resourceClass,
		Hash:          models.ResourceHash(resourceID, resourceClass),
	}
	err := r.db.Where(models.FollowerResource{
		FollowerID: userID,
		Hash:       relation.Hash,
	}).FirstOrCreate(&relation).Error
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

// Unfollow deletes the relation if it exists and returns it. A missing
// relation is not an error: the result is (nil, nil) and nothing is written.
func (r *PostgresFollowerRepository) Unfollow(userID, resourceID uint, resourceClass string) (*models.FollowerResource, error) {
	relation, err := r.GetFollowerResource(userID, resourceID, resourceClass)
	if err != nil {
		return nil, err
	}
	if relation == nil {
		return nil, nil
	}
	if err := r.db.Delete(&models.FollowerResource{}, relation.ID).Error; err != nil {
		return nil, err
	}
	return relation, nil
}

// GetFollowerResource looks up one relation by (follower, resource hash).
// Returns (nil, nil) when no relation exists.
func (r *PostgresFollowerRepository) GetFollowerResource(userID, resourceID uint, resourceClass string) (*models.FollowerResource, error) {
	var relation models.FollowerResource
	err := r.db.Where("follower_id = ? AND hash = ?", userID, models.ResourceHash(resourceID, resourceClass)).
		First(&relation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

// FindFollowerIDs returns the distinct set of follower ids for the resource
func (r *PostgresFollowerRepository) FindFollowerIDs(resourceID uint, resourceClass string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.FollowerResource{}).
		Where("hash = ?", models.ResourceHash(resourceID, resourceClass)).
		Distinct().
		Pluck("follower_id", &ids).Error
	return ids, err
}
