package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"smartrail/models"
)

// ErrNotFound is returned for lookups of unknown PNRs or passengers.
var ErrNotFound = errors.New("record not found")

// BookingStore reads and updates booking state in Postgres. It is the
// boundary to the reservation subsystem: seat generation treats its
// Confirmed/RAC rows as the source of truth for occupied berths. When no
// database is configured every method degrades to "no booking data",
// leaving the dataset-declared seat state in effect.
type BookingStore struct {
	db *sql.DB
}

func NewBookingStore(db *sql.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (b *BookingStore) Enabled() bool {
	return b != nil && b.db != nil
}

// BookedSeats returns the occupied seat numbers per coach for a train.
// Confirmed and RAC passengers occupy a berth; waitlisted ones do not.
func (b *BookingStore) BookedSeats(ctx context.Context, trainNumber string) (map[string]map[int]bool, error) {
	if !b.Enabled() {
		return nil, nil
	}

	rows, err := b.db.QueryContext(ctx, `
		SELECT coach_id, seat_no
		FROM passengers
		WHERE train_number = $1 AND status IN ($2, $3) AND seat_no > 0`,
		trainNumber, models.PassengerConfirmed, models.PassengerRAC)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[string]map[int]bool)
	for rows.Next() {
		var coachID string
		var seatNo int
		if err := rows.Scan(&coachID, &seatNo); err != nil {
			log.Printf("BookedSeats: scan error: %v", err)
			continue
		}
		if booked[coachID] == nil {
			booked[coachID] = make(map[int]bool)
		}
		booked[coachID][seatNo] = true
	}
	return booked, rows.Err()
}

// BookedLookup builds the seat-occupancy lookup the seat builder
// consumes. A nil return means no overlay (store disabled or query
// failed); the failure is logged, not surfaced, so availability still
// renders from dataset state.
func (b *BookingStore) BookedLookup(ctx context.Context, trainNumber string) BookedLookup {
	booked, err := b.BookedSeats(ctx, trainNumber)
	if err != nil {
		log.Printf("BookedLookup: falling back to dataset seat state: %v", err)
		return nil
	}
	if booked == nil {
		return nil
	}
	return func(coachID string, seatNumber int) bool {
		return booked[coachID][seatNumber]
	}
}

func (b *BookingStore) PassengerByPNR(ctx context.Context, pnr string) (*models.Passenger, error) {
	if !b.Enabled() {
		return nil, ErrNotFound
	}

	var p models.Passenger
	var verifiedAt sql.NullTime
	err := b.db.QueryRowContext(ctx, `
		SELECT id, pnr, name, age, gender, COALESCE(mobile, ''),
		       train_number, coach_id, seat_no, boarding, destination,
		       status, COALESCE(ticket_class, ''), verified, verified_at,
		       COALESCE(fare, 0)
		FROM passengers
		WHERE pnr = $1`, pnr).Scan(
		&p.ID, &p.PNR, &p.Name, &p.Age, &p.Gender, &p.Mobile,
		&p.TrainNumber, &p.CoachID, &p.SeatNo, &p.Boarding, &p.Destination,
		&p.Status, &p.TicketClass, &p.Verified, &verifiedAt, &p.Fare)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if verifiedAt.Valid {
		p.VerifiedAt = verifiedAt.Time
	}
	return &p, nil
}

func (b *BookingStore) PassengersByCoach(ctx context.Context, trainNumber, coachID string) ([]models.Passenger, error) {
	if !b.Enabled() {
		return []models.Passenger{}, nil
	}

	rows, err := b.db.QueryContext(ctx, `
		SELECT id, pnr, name, age, gender, COALESCE(mobile, ''),
		       train_number, coach_id, seat_no, boarding, destination,
		       status, COALESCE(ticket_class, ''), verified, verified_at,
		       COALESCE(fare, 0)
		FROM passengers
		WHERE train_number = $1 AND coach_id = $2
		ORDER BY seat_no`, trainNumber, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]models.Passenger, 0)
	for rows.Next() {
		var p models.Passenger
		var verifiedAt sql.NullTime
		if err := rows.Scan(
			&p.ID, &p.PNR, &p.Name, &p.Age, &p.Gender, &p.Mobile,
			&p.TrainNumber, &p.CoachID, &p.SeatNo, &p.Boarding, &p.Destination,
			&p.Status, &p.TicketClass, &p.Verified, &verifiedAt, &p.Fare); err != nil {
			log.Printf("PassengersByCoach: scan error: %v", err)
			continue
		}
		if verifiedAt.Valid {
			p.VerifiedAt = verifiedAt.Time
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

// MarkVerified records a TTE ticket check for a passenger.
func (b *BookingStore) MarkVerified(ctx context.Context, id int64) error {
	if !b.Enabled() {
		return errors.New("booking store not configured")
	}

	result, err := b.db.ExecContext(ctx, `
		UPDATE passengers
		SET verified = TRUE, verified_at = $2
		WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// MarkNoShow releases a passenger's berth after a missed boarding.
func (b *BookingStore) MarkNoShow(ctx context.Context, id int64) error {
	if !b.Enabled() {
		return errors.New("booking store not configured")
	}

	result, err := b.db.ExecContext(ctx, `
		UPDATE passengers
		SET status = $2
		WHERE id = $1`, id, models.PassengerNoShow)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
