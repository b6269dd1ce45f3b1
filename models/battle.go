// models/battle.go - Crew vs crew battles
package models

import "time"

// BattleStatus is the persisted lifecycle state of a battle.
// "no battle" is a response-level concept and never stored here.
type BattleStatus string

const (
	BattleStatusStarted  BattleStatus = "STARTED"
	BattleStatusFinished BattleStatus = "FINISHED"
)

// Battle is a competition between a home crew and an away crew.
// Crews are referenced by id; HomeCrew/AwayCrew are only populated when explicitly preloaded.
type Battle struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	HomeCrewID    uint         `json:"home_crew_id" gorm:"not null;index"`
	HomeCrew      *Crew        `json:"home_crew,omitempty" gorm:"foreignKey:HomeCrewID"`
	AwayCrewID    uint         `json:"away_crew_id" gorm:"not null;index"`
	AwayCrew      *Crew        `json:"away_crew,omitempty" gorm:"foreignKey:AwayCrewID"`
	HomeCrewScore float64      `json:"home_crew_score" gorm:"default:0"`
	AwayCrewScore float64      `json:"away_crew_score" gorm:"default:0"`
	Status        BattleStatus `json:"status" gorm:"not null;default:'STARTED';size:20;index"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Battle) TableName() string {
	return "battles"
}

// Sides resolves which crew is "mine" and which is the opponent for crewID.
// ok is false when crewID is on neither side.
func (b *Battle) Sides(crewID uint) (mine, opponent uint, ok bool) {
	switch crewID {
	case b.HomeCrewID:
		return b.HomeCrewID, b.AwayCrewID, true
	case b.AwayCrewID:
		return b.AwayCrewID, b.HomeCrewID, true
	}
	return 0, 0, false
}

// ScoresFor returns (mine, opponent) recorded scores from crewID's point of view.
func (b *Battle) ScoresFor(crewID uint) (float64, float64) {
	if crewID == b.AwayCrewID {
		return b.AwayCrewScore, b.HomeCrewScore
	}
	return b.HomeCrewScore, b.AwayCrewScore
}

// Winner returns the crew with the strictly greater recorded score. Draws have no winner.
func (b *Battle) Winner() (uint, bool) {
	switch {
	case b.HomeCrewScore > b.AwayCrewScore:
		return b.HomeCrewID, true
	case b.AwayCrewScore > b.HomeCrewScore:
		return b.AwayCrewID, true
	}
	return 0, false
}

// BattleStats aggregates finished battles for one crew.
type BattleStats struct {
	Total int64 `json:"total_battle_count"`
	Won   int64 `json:"win_count"`
}
