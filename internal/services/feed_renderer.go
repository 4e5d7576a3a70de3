package services

import (
	"strconv"

	"notification-center/internal/models"
	"notification-center/internal/repositories"
)

// Renderer turns one viewer row into user-facing content. The second argument
// is the configured system display name, passed through unchanged.
type Renderer func(view *models.NotificationViewer, systemName string) (string, error)

// FeedRenderer paginates a user's feed and renders each row through the
// renderer registered for its action key
type FeedRenderer struct {
	notificationRepository repositories.NotificationRepository
	renderers              map[string]Renderer
	systemName             string
}

// NewFeedRenderer creates a FeedRenderer with an empty renderer registry
func NewFeedRenderer(notifRepo repositories.NotificationRepository, systemName string) *FeedRenderer {
	return &FeedRenderer{
		notificationRepository: notifRepo,
		renderers:              make(map[string]Renderer),
		systemName:             systemName,
	}
}

// Register installs the renderer for an action key, replacing any previous one
func (f *FeedRenderer) Register(actionKey string, renderer Renderer) {
	f.renderers[actionKey] = renderer
}

// RenderPage fetches one feed page, renders every row whose action key has a
// registered renderer and marks the whole page as viewed in one batch.
// Rows without a renderer are skipped from the result but still marked
// viewed. The rendered map is keyed by the viewer row id as a string.
func (f *FeedRenderer) RenderPage(userID uint, page, perPage int) (repositories.PageInfo, map[string]string, error) {
	viewers, pageInfo, err := f.notificationRepository.PageForUser(userID, page, perPage)
	if err != nil {
		return repositories.PageInfo{}, nil, err
	}

	views := make(map[string]string)
	colorChooser := NewColorChooser()
	var unviewedIDs []uint

	for i := range viewers {
		view := &viewers[i]
		if iconKey := view.Notification.IconKey; iconKey != "" {
			view.Notification.IconColor = colorChooser.ColorForName(iconKey)
		}

		if renderer, ok := f.renderers[view.Notification.ActionKey]; ok {
			content, err := renderer(view, f.systemName)
			if err != nil {
				return repositories.PageInfo{}, nil, err
			}
			views[strconv.FormatUint(uint64(view.ID), 10)] = content
		}

		if !view.Status {
			unviewedIDs = append(unviewedIDs, view.ID)
		}
	}

	if err := f.notificationRepository.MarkAsViewed(unviewedIDs); err != nil {
		return repositories.PageInfo{}, nil, err
	}

	return pageInfo, views, nil
}
