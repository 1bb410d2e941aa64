package patient

import (
	"encoding/json"
	"fmt"
)

// Patient is the canonical patient record. The domain id (id_pc) is distinct
// from the underlying user-account id (id_us).
type Patient struct {
	ID        int64  `json:"id_pc"`
	UserID    int64  `json:"id_us"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type envelope struct {
	Patient  *Patient  `json:"patient"`
	Patients []Patient `json:"patients"`
}

func decodeOne(body []byte) (Patient, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Patient != nil {
		return *env.Patient, nil
	}
	var p Patient
	if err := json.Unmarshal(body, &p); err != nil {
		return Patient{}, fmt.Errorf("decode patient: %w", err)
	}
	return p, nil
}

func decodeList(body []byte) ([]Patient, error) {
	var list []Patient
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode patient list: %w", err)
	}
	return env.Patients, nil
}
