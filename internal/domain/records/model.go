package records

import (
	"encoding/json"
	"fmt"
)

// MedicalRecord is one entry in a patient's history.
type MedicalRecord struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"id_pc"`
	DoctorID  int64  `json:"id_dc,omitempty"`
	Date      string `json:"date"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type envelope struct {
	Record  *MedicalRecord  `json:"record"`
	Records []MedicalRecord `json:"records"`
}

func decodeOne(body []byte) (MedicalRecord, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Record != nil {
		return *env.Record, nil
	}
	var rec MedicalRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return MedicalRecord{}, fmt.Errorf("decode medical record: %w", err)
	}
	return rec, nil
}

func decodeList(body []byte) ([]MedicalRecord, error) {
	var list []MedicalRecord
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode medical record list: %w", err)
	}
	return env.Records, nil
}
