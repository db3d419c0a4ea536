package models

import "time"

// ChargeMethod identifies how a session was initiated.
type ChargeMethod string

const (
	MethodApp  ChargeMethod = "App"
	MethodRFID ChargeMethod = "RFID"
	MethodQR   ChargeMethod = "QR"
)

// SessionStatus is the live status of the active session.
type SessionStatus string

const (
	SessionCharging SessionStatus = "charging"
	SessionStopping SessionStatus = "stopping"
)

// HistoryStatus is the persisted status of a history record.
type HistoryStatus string

const (
	HistoryCompleted  HistoryStatus = "completed"
	HistoryInProgress HistoryStatus = "in-progress"
	HistoryFailed     HistoryStatus = "failed"
)

// ActiveSession is the single live charging session record.
type ActiveSession struct {
	ID           string        `json:"id" yaml:"id"`
	ChargerID    string        `json:"charger_id" yaml:"chargerId"`
	ChargerName  string        `json:"charger_name" yaml:"chargerName"`
	Site         string        `json:"site" yaml:"site"`
	Driver       string        `json:"driver" yaml:"driver"`
	Vehicle      string        `json:"vehicle" yaml:"vehicle"`
	Method       ChargeMethod  `json:"method" yaml:"method"`
	ConnectorID  string        `json:"connector_id,omitempty" yaml:"connectorId"`
	TargetSoc    int           `json:"target_soc" yaml:"targetSoc"`
	StartedAt    time.Time     `json:"started_at" yaml:"startedAt"`
	DurationMins int           `json:"duration_mins" yaml:"durationMins"`
	EnergyKWh    float64       `json:"energy_kwh" yaml:"energyKwh"`
	PowerKw      int           `json:"power_kw" yaml:"powerKw"`
	Cost         float64       `json:"cost" yaml:"cost"`
	Currency     string        `json:"currency" yaml:"currency"`
	Status       SessionStatus `json:"status" yaml:"status"`
}

// HistoryRecord is a persisted session summary, unique by ID.
type HistoryRecord struct {
	ID           string        `json:"id" yaml:"id"`
	ChargerID    string        `json:"charger_id" yaml:"chargerId"`
	Driver       string        `json:"driver" yaml:"driver"`
	Method       ChargeMethod  `json:"method" yaml:"method"`
	EnergyKWh    float64       `json:"energy_kwh" yaml:"energyKwh"`
	Cost         float64       `json:"cost" yaml:"cost"`
	StartedLabel string        `json:"started_label" yaml:"startedLabel"`
	Status       HistoryStatus `json:"status" yaml:"status"`
}
