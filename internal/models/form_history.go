package models

import "time"

// FormHistory is an append-only snapshot row written whenever a form's
// status changes.
type FormHistory struct {
	ID        string     `gorm:"type:varchar(36);primarykey" json:"id"`
	FormID    string     `gorm:"type:varchar(36);not null;index" json:"form_id"`
	MemberID  string     `gorm:"type:varchar(36);not null" json:"member_id"`
	Status    FormStatus `gorm:"type:varchar(20);not null" json:"status"`
	Data      *string    `gorm:"type:text" json:"data"`
	CreatedAt time.Time  `json:"created_at"`
}
