// internal/app/ds/user.go
package ds

import "time"

// User пользователь шлюза, хранится локально
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255) not null" json:"name"`
	Email     string    `gorm:"type:varchar(255) not null;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"type:varchar(255) not null" json:"-"`
	IsAdmin   bool      `gorm:"type:boolean not null;default:false" json:"is_admin"`
	AvatarURL string    `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
