package mockserver

import (
	"sync"

	"github.com/karpos/karpos/internal/platform/validate"
)

type user struct {
	ID       int64
	Email    string
	Password string
	Role     string
}

type patientRec struct {
	ID        int64  `json:"id_pc"`
	UserID    int64  `json:"id_us"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date,omitempty"`
	Email     string `json:"email,omitempty"`
}

type doctorRec struct {
	ID        int64  `json:"id_dc"`
	UserID    int64  `json:"id_us"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
}

type appointmentRec struct {
	ID            int64                      `json:"id"`
	PatientID     int64                      `json:"id_pc"`
	DoctorID      int64                      `json:"id_dc"`
	Date          string                     `json:"date"`
	Time          string                     `json:"time"`
	Status        validate.AppointmentStatus `json:"status"`
	PaymentStatus string                     `json:"payment_status,omitempty"`
	PaymentAmount float64                    `json:"payment_amount,omitempty"`
	Notes         string                     `json:"notes,omitempty"`
}

type recordRec struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"id_pc"`
	DoctorID  int64  `json:"id_dc,omitempty"`
	Date      string `json:"date"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// state is the mock backend's whole world. One lock is plenty at mock scale.
type state struct {
	mu            sync.Mutex
	users         []user
	patients      []patientRec
	doctors       []doctorRec
	appointments  []appointmentRec
	records       []recordRec
	refreshTokens map[string]int64 // refresh token -> user id
	nextApptID    int64
}

func seed() *state {
	return &state{
		users: []user{
			{ID: 1, Email: "admin@karpos.example", Password: "admin", Role: "admin"},
			{ID: 2, Email: "doctor@karpos.example", Password: "doctor", Role: "doctor"},
			{ID: 3, Email: "patient@karpos.example", Password: "patient", Role: "patient"},
			{ID: 4, Email: "patient2@karpos.example", Password: "patient", Role: "patient"},
		},
		doctors: []doctorRec{
			{ID: 1, UserID: 2, FirstName: "Carmen", LastName: "Ruiz", Specialty: "physiotherapy", Email: "doctor@karpos.example"},
		},
		patients: []patientRec{
			{ID: 1, UserID: 3, FirstName: "Mario", LastName: "Vega", BirthDate: "1987-02-11", Email: "patient@karpos.example"},
			{ID: 2, UserID: 4, FirstName: "Lucia", LastName: "Sanz", BirthDate: "1993-09-30", Email: "patient2@karpos.example"},
		},
		appointments: []appointmentRec{
			{ID: 1, PatientID: 1, DoctorID: 1, Date: "2025-06-10", Time: "10:00", Status: validate.StatusCompleted, PaymentStatus: "paid", PaymentAmount: 40},
			{ID: 2, PatientID: 1, DoctorID: 1, Date: "2025-07-02", Time: "12:30", Status: validate.StatusPending, PaymentStatus: "unpaid", PaymentAmount: 40},
			{ID: 3, PatientID: 2, DoctorID: 1, Date: "2025-07-03", Time: "09:00", Status: validate.StatusPending},
		},
		records: []recordRec{
			{ID: 1, PatientID: 1, DoctorID: 1, Date: "2025-06-10", Diagnosis: "rotator cuff strain", Treatment: "exercise program"},
		},
		refreshTokens: make(map[string]int64),
		nextApptID:    4,
	}
}

func (st *state) findUserByCredentials(email, password string) (user, bool) {
	for _, u := range st.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return user{}, false
}

func (st *state) findUserByID(id int64) (user, bool) {
	for _, u := range st.users {
		if u.ID == id {
			return u, true
		}
	}
	return user{}, false
}

func (st *state) findAppointment(id int64) (int, bool) {
	for i, a := range st.appointments {
		if a.ID == id {
			return i, true
		}
	}
	return 0, false
}
