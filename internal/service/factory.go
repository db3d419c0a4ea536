package service

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"chargehub/internal/directory"
	"chargehub/internal/models"
)

// ErrInvalidRequest marks a start request that fails validation.
var ErrInvalidRequest = errors.New("invalid request")

// Defaults applied when a start request omits fields.
const (
	defaultDriver  = "Manual start"
	defaultVehicle = "Fleet vehicle"

	sessionIDPrefix = "CHG"
)

var idGenerator = generateSessionID

var idSequence atomic.Uint64

// StartRequest carries caller-supplied fields for a new session.
type StartRequest struct {
	ChargerID   string              `json:"charger_id"`
	ChargerName string              `json:"charger_name,omitempty"`
	Site        string              `json:"site,omitempty"`
	Driver      string              `json:"driver,omitempty"`
	Vehicle     string              `json:"vehicle,omitempty"`
	Method      models.ChargeMethod `json:"method,omitempty"`
	ConnectorID string              `json:"connector_id,omitempty"`
	TargetSoc   int                 `json:"target_soc,omitempty"`
}

// Factory constructs active sessions from start requests.
type Factory struct {
	directory   directory.Lookup
	currency    string
	seedPowerKw int
	targetSoc   int
	now         func() time.Time
}

// NewFactory builds a factory applying the given session defaults.
func NewFactory(dir directory.Lookup, currency string, seedPowerKw, targetSoc int, now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{
		directory:   dir,
		currency:    currency,
		seedPowerKw: seedPowerKw,
		targetSoc:   targetSoc,
		now:         now,
	}
}

// Build validates req and returns a fully defaulted session. The exists
// predicate guards identifier collisions against already known sessions.
func (f *Factory) Build(req StartRequest, exists func(id string) bool) (models.ActiveSession, error) {
	if strings.TrimSpace(req.ChargerID) == "" {
		return models.ActiveSession{}, fmt.Errorf("%w: charger id is required", ErrInvalidRequest)
	}

	name := req.ChargerName
	if name == "" && f.directory != nil {
		name = f.directory.NameOf(req.ChargerID)
	}
	site := req.Site
	if site == "" {
		site = name
	}
	driver := req.Driver
	if driver == "" {
		driver = defaultDriver
	}
	vehicle := req.Vehicle
	if vehicle == "" {
		vehicle = defaultVehicle
	}
	method := req.Method
	if method == "" {
		method = models.MethodApp
	}
	targetSoc := req.TargetSoc
	if targetSoc <= 0 {
		targetSoc = f.targetSoc
	}
	if targetSoc > 100 {
		targetSoc = 100
	}

	id := idGenerator()
	for attempt := 0; exists != nil && exists(id) && attempt < 5; attempt++ {
		id = idGenerator()
	}
	if exists != nil && exists(id) {
		id = fmt.Sprintf("%s-%d", id, idSequence.Add(1))
	}

	return models.ActiveSession{
		ID:          id,
		ChargerID:   req.ChargerID,
		ChargerName: name,
		Site:        site,
		Driver:      driver,
		Vehicle:     vehicle,
		Method:      method,
		ConnectorID: req.ConnectorID,
		TargetSoc:   targetSoc,
		StartedAt:   f.now(),
		PowerKw:     f.seedPowerKw,
		Currency:    f.currency,
		Status:      models.SessionCharging,
	}, nil
}

func generateSessionID() string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d", sessionIDPrefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%04d", sessionIDPrefix, binary.BigEndian.Uint16(b)%10000)
}
