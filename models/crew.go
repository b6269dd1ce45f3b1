// models/crew.go
package models

import "time"

// DefaultCrewMemberLimit is applied to every newly registered crew.
const DefaultCrewMemberLimit = 10

type Crew struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null;size:100"`
	MemberLimit   int        `json:"member_limit" gorm:"not null;default:10"`
	ProfileImage  string     `json:"profile_image"`
	AverageAge    float64    `json:"average_age"`
	Description   string     `json:"description" gorm:"type:text"`
	CrewCoin      int        `json:"crew_coin" gorm:"default:0"`
	BasicScore    float64    `json:"basic_score" gorm:"default:0"`
	ActivityScore float64    `json:"activity_score" gorm:"default:0"`
	ExerciseID    uint       `json:"exercise_id" gorm:"not null;index"`
	Exercise      *Exercise  `json:"exercise,omitempty" gorm:"foreignKey:ExerciseID"`
	Members       []UserCrew `json:"members,omitempty" gorm:"foreignKey:CrewID"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Crew) TableName() string {
	return "crews"
}

// NewCrew builds a crew the way registration does: default member limit, empty coin balance.
func NewCrew(name, profileImage, description string, averageAge float64, exerciseID uint) *Crew {
	return &Crew{
		Name:         name,
		ProfileImage: profileImage,
		Description:  description,
		AverageAge:   averageAge,
		ExerciseID:   exerciseID,
		MemberLimit:  DefaultCrewMemberLimit,
		CrewCoin:     0,
	}
}

// TotalScore is the live battle standing of the crew.
func (c *Crew) TotalScore() float64 {
	return c.BasicScore + c.ActivityScore
}

// ExerciseName returns the associated exercise name, or "N/A" when it was not loaded.
func (c *Crew) ExerciseName() string {
	if c.Exercise == nil || c.Exercise.Name == "" {
		return "N/A"
	}
	return c.Exercise.Name
}

// Exercise is a kind of activity a crew is built around (running, cycling, ...).
type Exercise struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;uniqueIndex;size:50"`
	Description string  `json:"description" gorm:"type:text"`
	MET         float64 `json:"met" gorm:"default:0"`
}

func (Exercise) TableName() string {
	return "exercises"
}
