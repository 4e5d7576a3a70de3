package services

import (
	"notification-center/internal/models"
	"notification-center/internal/repositories"
)

// RecipientResolver computes the final set of user ids to notify for an event
type RecipientResolver struct {
	followerRepository repositories.FollowerRepository
}

// NewRecipientResolver creates a new RecipientResolver
func NewRecipientResolver(followerRepo repositories.FollowerRepository) *RecipientResolver {
	return &RecipientResolver{followerRepository: followerRepo}
}

// Resolve combines followers, explicit includes and excludes into the final
// recipient set. The doer is removed last and unconditionally: the actor never
// notifies itself, even when explicitly included or following the resource.
func (r *RecipientResolver) Resolve(notifiable models.Notifiable) ([]uint, error) {
	recipients := make(map[uint]struct{})

	if notifiable.SendToFollowers() && notifiable.Resource() != nil {
		resource := notifiable.Resource()
		followerIDs, err := r.followerRepository.FindFollowerIDs(resource.ID, resource.Class)
		if err != nil {
			return nil, err
		}
		for _, id := range followerIDs {
			recipients[id] = struct{}{}
		}
	}

	for _, id := range notifiable.IncludeUserIDs() {
		recipients[id] = struct{}{}
	}

	for _, id := range notifiable.ExcludeUserIDs() {
		delete(recipients, id)
	}

	if doer := notifiable.Doer(); doer != nil {
		delete(recipients, doer.ID)
	}

	userIDs := make([]uint, 0, len(recipients))
	for id := range recipients {
		userIDs = append(userIDs, id)
	}
	return userIDs, nil
}
