package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"chargehub/internal/directory"
	"chargehub/internal/models"
)

func testFactory() *Factory {
	dir := directory.NewStatic(map[string]string{"st1": "Plaza Hub A"})
	now := func() time.Time { return time.Date(2024, 6, 12, 14, 30, 0, 0, time.UTC) }
	return NewFactory(dir, "UGX", 60, 85, now)
}

func TestFactoryAppliesDefaults(t *testing.T) {
	session, err := testFactory().Build(StartRequest{ChargerID: "st1"}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if session.ChargerName != "Plaza Hub A" {
		t.Fatalf("expected directory name, got %q", session.ChargerName)
	}
	if session.Site != "Plaza Hub A" {
		t.Fatalf("expected site to fall back to charger name, got %q", session.Site)
	}
	if session.Driver != "Manual start" || session.Vehicle != "Fleet vehicle" {
		t.Fatalf("unexpected driver/vehicle defaults: %q / %q", session.Driver, session.Vehicle)
	}
	if session.Method != models.MethodApp {
		t.Fatalf("expected App method, got %q", session.Method)
	}
	if session.TargetSoc != 85 {
		t.Fatalf("expected target soc 85, got %d", session.TargetSoc)
	}
	if session.Currency != "UGX" || session.PowerKw != 60 {
		t.Fatalf("unexpected currency/power seed: %q / %d", session.Currency, session.PowerKw)
	}
	if session.EnergyKWh != 0 || session.Cost != 0 || session.DurationMins != 0 {
		t.Fatalf("expected zeroed metrics, got %+v", session)
	}
	if session.Status != models.SessionCharging {
		t.Fatalf("expected charging status, got %q", session.Status)
	}
	if !strings.HasPrefix(session.ID, "CHG-") {
		t.Fatalf("unexpected id format %q", session.ID)
	}
}

func TestFactoryKeepsCallerFields(t *testing.T) {
	session, err := testFactory().Build(StartRequest{
		ChargerID:   "st9",
		ChargerName: "Depot East",
		Site:        "Industrial Area",
		Driver:      "A. Okello",
		Vehicle:     "Kira EV",
		Method:      models.MethodRFID,
		ConnectorID: "B",
		TargetSoc:   70,
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if session.ChargerName != "Depot East" || session.Site != "Industrial Area" {
		t.Fatalf("caller fields overridden: %+v", session)
	}
	if session.Driver != "A. Okello" || session.Vehicle != "Kira EV" {
		t.Fatalf("caller fields overridden: %+v", session)
	}
	if session.Method != models.MethodRFID || session.ConnectorID != "B" || session.TargetSoc != 70 {
		t.Fatalf("caller fields overridden: %+v", session)
	}
}

func TestFactoryRejectsMissingChargerID(t *testing.T) {
	for _, chargerID := range []string{"", "   "} {
		_, err := testFactory().Build(StartRequest{ChargerID: chargerID}, nil)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %q, got %v", chargerID, err)
		}
	}
}

func TestFactoryClampsTargetSoc(t *testing.T) {
	session, err := testFactory().Build(StartRequest{ChargerID: "st1", TargetSoc: 150}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if session.TargetSoc != 100 {
		t.Fatalf("expected target soc clamped to 100, got %d", session.TargetSoc)
	}
}

func TestFactoryRetriesCollidingIDs(t *testing.T) {
	originalGenerator := idGenerator
	ids := []string{"CHG-0001", "CHG-0001", "CHG-0002"}
	idGenerator = func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}
	t.Cleanup(func() { idGenerator = originalGenerator })

	taken := map[string]bool{"CHG-0001": true}
	session, err := testFactory().Build(StartRequest{ChargerID: "st1"}, func(id string) bool { return taken[id] })
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if session.ID != "CHG-0002" {
		t.Fatalf("expected collision retry to pick CHG-0002, got %s", session.ID)
	}
}

func TestFactoryExhaustedRetriesStillUnique(t *testing.T) {
	originalGenerator := idGenerator
	idGenerator = func() string { return "CHG-0001" }
	t.Cleanup(func() { idGenerator = originalGenerator })

	session, err := testFactory().Build(StartRequest{ChargerID: "st1"}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if session.ID != "CHG-0001" {
		t.Fatalf("expected generated id when free, got %s", session.ID)
	}

	collided, err := testFactory().Build(StartRequest{ChargerID: "st1"}, func(id string) bool { return id == "CHG-0001" })
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if collided.ID == "CHG-0001" {
		t.Fatalf("expected a disambiguated id, got %s", collided.ID)
	}
	if !strings.HasPrefix(collided.ID, "CHG-0001-") {
		t.Fatalf("expected sequence suffix, got %s", collided.ID)
	}
}
