package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// User is the account record. Authentication itself is token based, see
// pkg/jwt; this package only owns identity and the follow graph.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	FirstName    string    `json:"first_name" gorm:"size:150;not null"`
	LastName     string    `json:"last_name" gorm:"size:150;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"-" gorm:"size:20;not null;default:user"`
	CreatedAt    time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// Follow is a subscription edge: UserID follows AuthorID.
type Follow struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_follow_pair;check:chk_follow_not_self,user_id <> author_id"`
	AuthorID  int64     `gorm:"not null;index;uniqueIndex:idx_follow_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string { return "follows" }

// Actor is the authenticated caller of an operation. Zero ID means anonymous.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAuthenticated() bool { return a.ID != 0 }

func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}
