package routing

import (
	"errors"
	"fmt"
	"time"

	"github.com/sura-dev/sura/internal/models"
	"github.com/sura-dev/sura/internal/notify"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response decisions accepted by RecordResponse.
const (
	DecisionAccept  = "accept"
	DecisionDecline = "decline"
)

// AlreadyProcessedMessage is returned, without any mutation, when a response
// signal arrives for a record already in an absorbing state.
const AlreadyProcessedMessage = "Request already processed."

var (
	ErrNotFound    = errors.New("donation request not found")
	ErrBadDecision = errors.New(`decision must be "accept" or "decline"`)
)

// Engine is the donation routing state machine. It selects the initial NGO
// for a submitted donation, finalizes acceptance and re-routes declines to
// NGOs not yet contacted for that record, appending history events at every
// transition. Email delivery is best-effort and happens strictly after the
// state transition commits.
type Engine struct {
	db       *gorm.DB
	notifier notify.Notifier
	baseURL  string
	now      func() time.Time
	locks    *recordLocks
}

func NewEngine(db *gorm.DB, notifier notify.Notifier, baseURL string) *Engine {
	return &Engine{
		db:       db,
		notifier: notifier,
		baseURL:  baseURL,
		now:      time.Now,
		locks:    newRecordLocks(),
	}
}

// DonationInput is one restaurant's surplus-food offer.
type DonationInput struct {
	Restaurant string
	Contact    string
	Location   string
	FoodType   string
	Quantity   int
	Expiry     string
	Email      string
	Notes      string
}

// SubmitResult reports the created record, the caller-facing status message
// and whether the notification attempt succeeded. EmailSent is informational
// only; delivery failure never rolls back the transition.
type SubmitResult struct {
	Record    models.Donation
	Message   string
	EmailSent bool
}

// ResponseResult reports the outcome of one accept/decline signal.
type ResponseResult struct {
	Message   string
	EmailSent bool
}

// SubmitDonation persists a new donation record, assigns the initial NGO and
// emails it a pickup request. Each call creates a new record. When the NGO
// directory is empty the record terminates as No NGO Available.
func (e *Engine) SubmitDonation(input DonationInput) (SubmitResult, error) {
	record := models.Donation{
		Restaurant:  input.Restaurant,
		Contact:     input.Contact,
		Location:    input.Location,
		FoodType:    input.FoodType,
		Quantity:    input.Quantity,
		Expiry:      input.Expiry,
		Email:       input.Email,
		Notes:       input.Notes,
		Status:      models.StatusPending,
		NGOAssigned: models.NotYetAssigned,
	}

	if err := e.db.Create(&record).Error; err != nil {
		return SubmitResult{}, err
	}

	ngo, err := e.selectInitialNGO(input.Location)

	if err != nil {
		return SubmitResult{}, err
	}

	if ngo == nil {
		err := e.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&record).Update("status", models.StatusNoNGO).Error; err != nil {
				return err
			}
			return e.appendEvent(tx, record.ID, "No NGOs found in the requested location.")
		})

		if err != nil {
			return SubmitResult{}, err
		}

		record, err = e.reload(record.ID)

		if err != nil {
			return SubmitResult{}, err
		}

		return SubmitResult{
			Record:  record,
			Message: "Request saved, but no NGOs available in your area.",
		}, nil
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":         models.StatusWaiting,
			"ngo_assigned":   ngo.Name,
			"contacted_ngos": datatypes.NewJSONSlice([]string{ngo.Name}),
		}

		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}

		return e.appendEvent(tx, record.ID, fmt.Sprintf("Email sent to NGO %s requesting pickup.", ngo.Name))
	})

	if err != nil {
		return SubmitResult{}, err
	}

	record, err = e.reload(record.ID)

	if err != nil {
		return SubmitResult{}, err
	}

	sent := e.notifier.Send(ngo.Email,
		"New Food Donation Request Assigned",
		notify.AssignmentEmail(ngo.Name, e.donorInfo(record), record, e.baseURL, false))

	return SubmitResult{
		Record:    record,
		Message:   fmt.Sprintf("Request saved. Contacted NGO: %s", ngo.Name),
		EmailSent: sent,
	}, nil
}

// RecordResponse applies one accept/decline signal to a record. Signals for
// records already in an absorbing state are reported no-ops. The
// read-check-mutate-append cycle is serialized per record; email goes out
// only after the transaction commits.
func (e *Engine) RecordResponse(id uint, decision string) (ResponseResult, error) {
	if decision != DecisionAccept && decision != DecisionDecline {
		return ResponseResult{}, ErrBadDecision
	}

	unlock := e.locks.lock(id)
	defer unlock()

	var record models.Donation

	if err := e.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResponseResult{}, ErrNotFound
		}
		return ResponseResult{}, err
	}

	if models.IsTerminal(record.Status) {
		return ResponseResult{Message: AlreadyProcessedMessage}, nil
	}

	if decision == DecisionAccept {
		return e.accept(record)
	}

	return e.decline(record)
}

func (e *Engine) accept(record models.Donation) (ResponseResult, error) {
	current := record.NGOAssigned

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&record).Update("status", models.StatusAccepted).Error; err != nil {
			return err
		}

		if err := e.appendEvent(tx, record.ID, fmt.Sprintf("Request ACCEPTED by NGO %s.", current)); err != nil {
			return err
		}

		return e.appendEvent(tx, record.ID, fmt.Sprintf("Email sent to Donor (%s) with pickup confirmation.", record.Email))
	})

	if err != nil {
		return ResponseResult{}, err
	}

	contact := notify.NGOContact{Name: current, Email: "Unknown", Contact: "Unknown"}

	var ngo models.NGO

	if err := e.db.Where("name = ?", current).First(&ngo).Error; err == nil {
		contact = notify.NGOContact{Name: ngo.Name, Email: ngo.Email, Contact: ngo.Contact}
	}

	sent := e.notifier.Send(record.Email,
		fmt.Sprintf("Update on your Food Donation Request : %d", record.ID),
		notify.AcceptedEmail(record, contact))

	return ResponseResult{
		Message:   fmt.Sprintf("Successfully accepted by %s.", current),
		EmailSent: sent,
	}, nil
}

func (e *Engine) decline(record models.Donation) (ResponseResult, error) {
	current := record.NGOAssigned

	next, err := e.selectUntriedNGO(record)

	if err != nil {
		return ResponseResult{}, err
	}

	if next == nil {
		err := e.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&record).Update("status", models.StatusDeclinedNoNGO).Error; err != nil {
				return err
			}

			if err := e.appendEvent(tx, record.ID, fmt.Sprintf("Request DECLINED by %s. No more NGOs available in %s.", current, record.Location)); err != nil {
				return err
			}

			return e.appendEvent(tx, record.ID, fmt.Sprintf("Email sent to Donor (%s) that no NGOs are available.", record.Email))
		})

		if err != nil {
			return ResponseResult{}, err
		}

		sent := e.notifier.Send(record.Email,
			fmt.Sprintf("Update on your Food Donation Request : %d", record.ID),
			notify.ExhaustedEmail(record))

		return ResponseResult{
			Message:   "Declined. No other NGOs available.",
			EmailSent: sent,
		}, nil
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":         models.StatusWaiting,
			"ngo_assigned":   next.Name,
			"contacted_ngos": datatypes.NewJSONSlice(append([]string(record.ContactedNGOs), next.Name)),
		}

		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}

		if err := e.appendEvent(tx, record.ID, fmt.Sprintf("Request DECLINED by %s. Forwarding to %s.", current, next.Name)); err != nil {
			return err
		}

		return e.appendEvent(tx, record.ID, fmt.Sprintf("Email sent to NGO %s requesting pickup.", next.Name))
	})

	if err != nil {
		return ResponseResult{}, err
	}

	sent := e.notifier.Send(next.Email,
		"New Food Donation Request - Please Respond",
		notify.AssignmentEmail(next.Name, e.donorInfo(record), record, e.baseURL, true))

	return ResponseResult{
		Message:   fmt.Sprintf("Declined. Forwarded to %s.", next.Name),
		EmailSent: sent,
	}, nil
}

// selectInitialNGO prefers an exact location match, falling back to the full
// directory so a donation is not dropped over an unmatched location string.
// Both searches use stable directory order (lowest ID first). Returns nil
// only when the directory is empty.
func (e *Engine) selectInitialNGO(location string) (*models.NGO, error) {
	var ngo models.NGO

	err := e.db.Where("location = ?", location).Order("id").First(&ngo).Error

	if err == nil {
		return &ngo, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = e.db.Order("id").First(&ngo).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &ngo, nil
}

// selectUntriedNGO picks the first NGO at the record's location, in stable
// directory order, that does not appear in the record's contacted set. An
// NGO contacted once is never asked again for the same record.
func (e *Engine) selectUntriedNGO(record models.Donation) (*models.NGO, error) {
	var candidates []models.NGO

	err := e.db.
		Where("location = ? AND name <> ?", record.Location, record.NGOAssigned).
		Order("id").
		Find(&candidates).Error

	if err != nil {
		return nil, err
	}

	contacted := make(map[string]bool, len(record.ContactedNGOs))

	for _, name := range record.ContactedNGOs {
		contacted[name] = true
	}

	for i := range candidates {
		if !contacted[candidates[i].Name] {
			return &candidates[i], nil
		}
	}

	return nil, nil
}

// appendEvent adds one timestamped entry to the record's history log within
// the caller's transaction.
func (e *Engine) appendEvent(tx *gorm.DB, donationID uint, event string) error {
	return tx.Create(&models.DonationEvent{
		DonationID: donationID,
		Time:       e.now(),
		Event:      event,
	}).Error
}

func (e *Engine) reload(id uint) (models.Donation, error) {
	var record models.Donation

	err := e.db.
		Preload("Events", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		First(&record, id).Error

	return record, err
}

// donorInfo resolves the registered restaurant profile for NGO-facing email,
// falling back to the snapshot carried on the record.
func (e *Engine) donorInfo(record models.Donation) notify.DonorInfo {
	var restaurant models.Restaurant

	if err := e.db.Where("name = ?", record.Restaurant).First(&restaurant).Error; err == nil {
		return notify.DonorInfo{
			Name:     restaurant.Name,
			Location: restaurant.Location,
			Email:    restaurant.Email,
			Contact:  restaurant.Contact,
		}
	}

	return notify.DonorInfo{
		Name:     record.Restaurant,
		Location: record.Location,
		Email:    record.Email,
		Contact:  record.Contact,
	}
}
