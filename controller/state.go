package controller

import (
	"weather-widget/datasource"
	"weather-widget/models"
)

// Phase is the stage of the most recent query.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the controller's query state. Snapshot is set only in Success,
// Failure only in Failed.
type State struct {
	Phase    Phase
	Snapshot models.WeatherSnapshot
	Failure  *datasource.QueryFailure
}
