package dto

import "time"

const (
	DependencyUp       = "up"
	DependencyDown     = "down"
	DependencyDisabled = "disabled"
)

type HealthResponseData struct {
	App          string            `json:"app"`
	Environment  string            `json:"environment"`
	Dependencies map[string]string `json:"dependencies"`
	CheckedAt    time.Time         `json:"checked_at"`
}
