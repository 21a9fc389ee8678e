package routing

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sura-dev/sura/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type recordingNotifier struct {
	sends []sentEmail
	fail  bool
}

func (n *recordingNotifier) Send(to, subject, htmlBody string) bool {
	n.sends = append(n.sends, sentEmail{To: to, Subject: subject, Body: htmlBody})
	return !n.fail
}

func newTestEngine(t *testing.T, ngos []models.NGO) (*Engine, *recordingNotifier) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&models.NGO{}, &models.Restaurant{}, &models.Donation{}, &models.DonationEvent{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	if len(ngos) > 0 {
		if err := gdb.Create(&ngos).Error; err != nil {
			t.Fatalf("seed ngos: %v", err)
		}
	}

	notifier := &recordingNotifier{}
	return NewEngine(gdb, notifier, "http://localhost:3000"), notifier
}

func directoryNGOs() []models.NGO {
	return []models.NGO{
		{Name: "Helping Hands", Location: "Tambaram", Email: "hands@example.org", Contact: "9876543210"},
		{Name: "Smile Foundation", Location: "Pallavaram", Email: "smile@example.org", Contact: "9554862315"},
		{Name: "Food for all", Location: "Gundiy", Email: "foodforall@example.org", Contact: "8777564354"},
		{Name: "Hope Home", Location: "Tambaram", Email: "hope@example.org", Contact: "6655884426"},
		{Name: "Care & Share", Location: "Tambaram", Email: "care@example.org", Contact: "7765894159"},
	}
}

func tambaramDonation() DonationInput {
	return DonationInput{
		Restaurant: "A",
		Contact:    "9000000000",
		Location:   "Tambaram",
		FoodType:   "Rice",
		Quantity:   50,
		Expiry:     "2h",
		Email:      "a@x.com",
	}
}

func eventCount(t *testing.T, e *Engine, id uint) int {
	t.Helper()

	var count int64
	if err := e.db.Model(&models.DonationEvent{}).Where("donation_id = ?", id).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return int(count)
}

func fetch(t *testing.T, e *Engine, id uint) models.Donation {
	t.Helper()

	record, err := e.reload(id)
	if err != nil {
		t.Fatalf("reload record %d: %v", id, err)
	}
	return record
}

func TestSubmitAssignsFirstLocationMatch(t *testing.T) {
	engine, notifier := newTestEngine(t, directoryNGOs())

	result, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	if result.Record.NGOAssigned != "Helping Hands" {
		t.Fatalf("expected Helping Hands assigned, got %q", result.Record.NGOAssigned)
	}
	if result.Record.Status != models.StatusWaiting {
		t.Fatalf("expected status %q, got %q", models.StatusWaiting, result.Record.Status)
	}
	if got := []string(result.Record.ContactedNGOs); len(got) != 1 || got[0] != "Helping Hands" {
		t.Fatalf("expected contacted set [Helping Hands], got %v", got)
	}
	if len(result.Record.Events) != 1 {
		t.Fatalf("expected 1 history event, got %d", len(result.Record.Events))
	}
	if !strings.Contains(result.Record.Events[0].Event, "Helping Hands") {
		t.Fatalf("expected contact event to name the NGO, got %q", result.Record.Events[0].Event)
	}
	if len(notifier.sends) != 1 || notifier.sends[0].To != "hands@example.org" {
		t.Fatalf("expected one email to hands@example.org, got %v", notifier.sends)
	}
	if !result.EmailSent {
		t.Fatal("expected email attempt to be reported as sent")
	}
	if want := "Request saved. Contacted NGO: Helping Hands"; result.Message != want {
		t.Fatalf("expected message %q, got %q", want, result.Message)
	}
}

func TestSubmitFallsBackToFullDirectory(t *testing.T) {
	engine, _ := newTestEngine(t, directoryNGOs())

	input := tambaramDonation()
	input.Location = "Velachery"

	result, err := engine.SubmitDonation(input)
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	if result.Record.Status != models.StatusWaiting {
		t.Fatalf("expected fallback assignment, got status %q", result.Record.Status)
	}
	if result.Record.NGOAssigned != "Helping Hands" {
		t.Fatalf("expected first NGO in directory order, got %q", result.Record.NGOAssigned)
	}
}

func TestSubmitWithEmptyDirectory(t *testing.T) {
	engine, notifier := newTestEngine(t, nil)

	result, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	if result.Record.Status != models.StatusNoNGO {
		t.Fatalf("expected status %q, got %q", models.StatusNoNGO, result.Record.Status)
	}
	if result.Record.NGOAssigned != models.NotYetAssigned {
		t.Fatalf("expected sentinel assignment, got %q", result.Record.NGOAssigned)
	}
	if len(result.Record.Events) != 1 {
		t.Fatalf("expected 1 history event, got %d", len(result.Record.Events))
	}
	if len(notifier.sends) != 0 {
		t.Fatalf("expected no email for empty directory, got %d", len(notifier.sends))
	}
}

func TestAcceptAppendsTwoEventsAndNotifiesDonor(t *testing.T) {
	engine, notifier := newTestEngine(t, directoryNGOs())

	submitted, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	before := eventCount(t, engine, submitted.Record.ID)

	result, err := engine.RecordResponse(submitted.Record.ID, DecisionAccept)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	record := fetch(t, engine, submitted.Record.ID)

	if record.Status != models.StatusAccepted {
		t.Fatalf("expected status %q, got %q", models.StatusAccepted, record.Status)
	}
	if got := eventCount(t, engine, record.ID) - before; got != 2 {
		t.Fatalf("expected exactly 2 new events on accept, got %d", got)
	}
	if want := "Successfully accepted by Helping Hands."; result.Message != want {
		t.Fatalf("expected message %q, got %q", want, result.Message)
	}

	last := notifier.sends[len(notifier.sends)-1]
	if last.To != "a@x.com" {
		t.Fatalf("expected donor confirmation to a@x.com, got %q", last.To)
	}
	if !strings.Contains(last.Body, "hands@example.org") {
		t.Fatal("expected donor email to carry the NGO contact details")
	}
}

func TestAcceptTransitionsEvenWhenEmailFails(t *testing.T) {
	engine, notifier := newTestEngine(t, directoryNGOs())
	notifier.fail = true

	submitted, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	before := eventCount(t, engine, submitted.Record.ID)

	result, err := engine.RecordResponse(submitted.Record.ID, DecisionAccept)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if result.EmailSent {
		t.Fatal("expected email attempt to be reported as failed")
	}

	record := fetch(t, engine, submitted.Record.ID)

	if record.Status != models.StatusAccepted {
		t.Fatalf("expected accept to stand regardless of delivery, got %q", record.Status)
	}
	if got := eventCount(t, engine, record.ID) - before; got != 2 {
		t.Fatalf("expected exactly 2 new events, got %d", got)
	}
}

func TestDeclineForwardsThroughUntriedNGOsThenExhausts(t *testing.T) {
	engine, _ := newTestEngine(t, directoryNGOs())

	submitted, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	id := submitted.Record.ID
	contacted := map[string]bool{"Helping Hands": true}

	// Three NGOs serve Tambaram; after the initial contact two declines
	// forward and the third exhausts.
	for i := 0; i < 2; i++ {
		result, err := engine.RecordResponse(id, DecisionDecline)
		if err != nil {
			t.Fatalf("decline %d: %v", i+1, err)
		}
		if !strings.HasPrefix(result.Message, "Declined. Forwarded to ") {
			t.Fatalf("decline %d: expected forward, got %q", i+1, result.Message)
		}

		record := fetch(t, engine, id)

		if record.Status != models.StatusWaiting {
			t.Fatalf("decline %d: expected status %q, got %q", i+1, models.StatusWaiting, record.Status)
		}
		if contacted[record.NGOAssigned] {
			t.Fatalf("decline %d: re-contacted NGO %q", i+1, record.NGOAssigned)
		}
		if record.NGOAssigned != "Hope Home" && record.NGOAssigned != "Care & Share" {
			t.Fatalf("decline %d: expected a Tambaram NGO, got %q", i+1, record.NGOAssigned)
		}
		contacted[record.NGOAssigned] = true
	}

	result, err := engine.RecordResponse(id, DecisionDecline)
	if err != nil {
		t.Fatalf("final decline: %v", err)
	}
	if want := "Declined. No other NGOs available."; result.Message != want {
		t.Fatalf("expected exhaustion message %q, got %q", want, result.Message)
	}

	record := fetch(t, engine, id)

	if record.Status != models.StatusDeclinedNoNGO {
		t.Fatalf("expected status %q, got %q", models.StatusDeclinedNoNGO, record.Status)
	}
	if got := []string(record.ContactedNGOs); len(got) != 3 {
		t.Fatalf("expected 3 contacted NGOs, got %v", got)
	}
}

func TestDeclineNeverAssignsPreviouslyContactedNGO(t *testing.T) {
	engine, _ := newTestEngine(t, directoryNGOs())

	submitted, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	id := submitted.Record.ID

	for {
		record := fetch(t, engine, id)
		if models.IsTerminal(record.Status) {
			break
		}

		seen := make(map[string]bool)
		for _, name := range record.ContactedNGOs {
			seen[name] = true
		}

		if _, err := engine.RecordResponse(id, DecisionDecline); err != nil {
			t.Fatalf("decline: %v", err)
		}

		after := fetch(t, engine, id)
		if after.Status == models.StatusWaiting && seen[after.NGOAssigned] {
			t.Fatalf("re-contacted NGO %q; contacted set was %v", after.NGOAssigned, record.ContactedNGOs)
		}
	}
}

func TestResponseOnAbsorbedRecordIsNoOp(t *testing.T) {
	engine, _ := newTestEngine(t, directoryNGOs())

	submitted, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	id := submitted.Record.ID

	if _, err := engine.RecordResponse(id, DecisionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	events := eventCount(t, engine, id)

	for _, decision := range []string{DecisionAccept, DecisionDecline} {
		result, err := engine.RecordResponse(id, decision)
		if err != nil {
			t.Fatalf("%s after accept: %v", decision, err)
		}
		if result.Message != AlreadyProcessedMessage {
			t.Fatalf("%s after accept: expected %q, got %q", decision, AlreadyProcessedMessage, result.Message)
		}
	}

	record := fetch(t, engine, id)

	if record.Status != models.StatusAccepted {
		t.Fatalf("absorbing state mutated: %q", record.Status)
	}
	if got := eventCount(t, engine, id); got != events {
		t.Fatalf("history grew on a no-op: %d -> %d", events, got)
	}
}

func TestRecordResponseErrors(t *testing.T) {
	engine, _ := newTestEngine(t, directoryNGOs())

	if _, err := engine.RecordResponse(999, DecisionAccept); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := engine.RecordResponse(1, "maybe"); !errors.Is(err, ErrBadDecision) {
		t.Fatalf("expected ErrBadDecision, got %v", err)
	}
}

func TestHistoryEventsCarryEngineClock(t *testing.T) {
	engine, _ := newTestEngine(t, directoryNGOs())

	fixed := time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)
	engine.now = func() time.Time { return fixed }

	result, err := engine.SubmitDonation(tambaramDonation())
	if err != nil {
		t.Fatalf("submit donation: %v", err)
	}

	if len(result.Record.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Record.Events))
	}
	if !result.Record.Events[0].Time.Equal(fixed) {
		t.Fatalf("expected event time %v, got %v", fixed, result.Record.Events[0].Time)
	}
}
