package doctor

import (
	"encoding/json"
	"fmt"
)

// Doctor is the canonical doctor record. The domain id (id_dc) is distinct
// from the underlying user-account id (id_us); profile resolution matches on
// the latter.
type Doctor struct {
	ID        int64  `json:"id_dc"`
	UserID    int64  `json:"id_us"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type envelope struct {
	Doctor  *Doctor  `json:"doctor"`
	Doctors []Doctor `json:"doctors"`
}

func decodeOne(body []byte) (Doctor, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Doctor != nil {
		return *env.Doctor, nil
	}
	var d Doctor
	if err := json.Unmarshal(body, &d); err != nil {
		return Doctor{}, fmt.Errorf("decode doctor: %w", err)
	}
	return d, nil
}

func decodeList(body []byte) ([]Doctor, error) {
	var list []Doctor
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode doctor list: %w", err)
	}
	return env.Doctors, nil
}
