// models/body_history.go
package models

import "time"

// BodyHistory is a body-measurement snapshot. It lives in the document store, not in Postgres.
type BodyHistory struct {
	ID                 string    `json:"id"`
	UserID             uint      `json:"user_id"`
	Height             float64   `json:"height"`
	Weight             float64   `json:"weight"`
	SkeletalMuscleMass float64   `json:"skeletal_muscle_mass"`
	BodyFat            float64   `json:"body_fat"`
	BMI                float64   `json:"bmi"`
	CreatedAt          time.Time `json:"created_at"`
}

// CalculateBMI derives BMI from height in centimeters and weight in kilograms.
func CalculateBMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return weightKG / (m * m)
}
