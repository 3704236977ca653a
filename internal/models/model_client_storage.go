package models

import "time"

// ClientStorageEntry is one named entry of the console's local storage
// ("payments", "customers", "activity"); Value is a JSON array.
type ClientStorageEntry struct {
	Key       string    `gorm:"column:key;type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClientStorageEntry) TableName() string { return "client_storage" }
