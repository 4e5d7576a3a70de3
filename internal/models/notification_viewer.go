package models

// NotificationViewer tracks per-recipient read state for one notification
type NotificationViewer struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	NotificationID uint         `json:"notification_id" gorm:"index"`
	Notification   Notification `json:"notification" gorm:"foreignKey:NotificationID"`
	ViewerID       uint         `json:"viewer_id" gorm:"index"`
	Status         bool         `json:"status" gorm:"default:false;index"` // false = unviewed; flips to true exactly once
}
