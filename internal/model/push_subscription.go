package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey;size:512"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Tables []SubscriptionTable `gorm:"foreignKey:Endpoint;references:Endpoint;constraint:OnDelete:CASCADE"`
}

// SubscriptionTable links a subscription to one table of the layout. Tables are
// not database entities (they live in the layout sheet), so the link carries the
// sheet-side table identifier directly.
type SubscriptionTable struct {
	Endpoint string `gorm:"primaryKey;size:512"`
	TableID  string `gorm:"primaryKey;size:64"`
}
