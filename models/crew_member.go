// models/crew_member.go
package models

import "time"

type CrewRole string

const (
	CrewRoleLeader CrewRole = "LEADER"
	CrewRoleMember CrewRole = "MEMBER"
)

// UserCrew is a user's membership in a crew.
type UserCrew struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	UserID   uint      `json:"user_id" gorm:"not null;index"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CrewID   uint      `json:"crew_id" gorm:"not null;index"`
	Crew     *Crew     `json:"crew,omitempty" gorm:"foreignKey:CrewID"`
	Role     CrewRole  `json:"role" gorm:"not null;default:'MEMBER';size:10"`
	JoinedAt time.Time `json:"joined_at" gorm:"not null"`
}

func (UserCrew) TableName() string {
	return "user_crews"
}

// CrewMemberInfo is one row of a member contribution ranking.
type CrewMemberInfo struct {
	UserID           uint   `json:"user_id"`
	Nickname         string `json:"nickname"`
	UserProfileImage string `json:"user_profile_image"`
	ExerciseTime     int64  `json:"exercise_time"` // seconds
}
