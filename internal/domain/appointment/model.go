package appointment

import (
	"encoding/json"
	"fmt"

	"github.com/karpos/karpos/internal/platform/validate"
)

// Appointment is the canonical client-side record. The backend sometimes
// nests the payload under an "appointment" key and sometimes returns it flat;
// the normalization helpers below fold both shapes into this one type so the
// ambiguity never leaks past this package.
type Appointment struct {
	ID            int64                      `json:"id"`
	PatientID     int64                      `json:"id_pc"`
	DoctorID      int64                      `json:"id_dc"`
	Date          string                     `json:"date"`
	Time          string                     `json:"time"`
	Status        validate.AppointmentStatus `json:"status"`
	PaymentStatus string                     `json:"payment_status,omitempty"`
	PaymentAmount float64                    `json:"payment_amount,omitempty"`
	Notes         string                     `json:"notes,omitempty"`
	Patient       *PersonSummary             `json:"patient,omitempty"`
	Doctor        *PersonSummary             `json:"doctor,omitempty"`
}

// PersonSummary is the short patient/doctor block the backend embeds in
// appointment payloads.
type PersonSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

type envelope struct {
	Appointment  *Appointment  `json:"appointment"`
	Appointments []Appointment `json:"appointments"`
}

// decodeOne accepts either a flat appointment object or one nested under an
// "appointment" key.
func decodeOne(body []byte) (Appointment, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Appointment != nil {
		return *env.Appointment, nil
	}
	var appt Appointment
	if err := json.Unmarshal(body, &appt); err != nil {
		return Appointment{}, fmt.Errorf("decode appointment: %w", err)
	}
	return appt, nil
}

// decodeList accepts a bare JSON array or an object with an "appointments"
// key. A missing or null list is an empty slice, never an error.
func decodeList(body []byte) ([]Appointment, error) {
	var list []Appointment
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode appointment list: %w", err)
	}
	return env.Appointments, nil
}
