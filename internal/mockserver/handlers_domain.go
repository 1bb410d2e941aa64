package mockserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/karpos/karpos/internal/platform/validate"
)

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Appointments --

func (s *Server) handleListAppointments(c echo.Context) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return c.JSON(http.StatusOK, s.state.appointments)
}

func (s *Server) handleGetAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	i, ok := s.state.findAppointment(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	// Single fetches come back nested, as the real backend does.
	return c.JSON(http.StatusOK, map[string]any{"appointment": s.state.appointments[i]})
}

func (s *Server) handleCreateAppointment(c echo.Context) error {
	var in appointmentRec
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	in.ID = s.state.nextApptID
	s.state.nextApptID++
	in.Status = validate.StatusPending
	if in.PaymentStatus == "" {
		in.PaymentStatus = "unpaid"
	}
	s.state.appointments = append(s.state.appointments, in)

	return c.JSON(http.StatusCreated, map[string]any{"appointment": in})
}

func (s *Server) handleAppointmentsByPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	out := make([]appointmentRec, 0)
	for _, a := range s.state.appointments {
		if a.PatientID == id {
			out = append(out, a)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleAppointmentsByDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	out := make([]appointmentRec, 0)
	for _, a := range s.state.appointments {
		if a.DoctorID == id {
			out = append(out, a)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	status := validate.Status(body.Status, s.logger)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	i, ok := s.state.findAppointment(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	s.state.appointments[i].Status = status
	return c.JSON(http.StatusOK, map[string]any{"appointment": s.state.appointments[i]})
}

func (s *Server) handleCancelAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	i, ok := s.state.findAppointment(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	s.state.appointments[i].Status = validate.StatusCancelled
	return c.JSON(http.StatusOK, map[string]any{"appointment": s.state.appointments[i]})
}

// -- Patients / doctors --

func (s *Server) handleListPatients(c echo.Context) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return c.JSON(http.StatusOK, s.state.patients)
}

func (s *Server) handleGetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, p := range s.state.patients {
		if p.ID == id {
			return c.JSON(http.StatusOK, map[string]any{"patient": p})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "patient not found")
}

func (s *Server) handleListPatientsAlt(c echo.Context) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"patients": s.state.patients})
}

func (s *Server) handleListDoctors(c echo.Context) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return c.JSON(http.StatusOK, s.state.doctors)
}

func (s *Server) handleListDoctorsAlt(c echo.Context) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"doctors": s.state.doctors})
}

func (s *Server) handleGetDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, d := range s.state.doctors {
		if d.ID == id {
			return c.JSON(http.StatusOK, map[string]any{"doctor": d})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
}

// -- Medical records --

func (s *Server) handleRecordsByPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	out := make([]recordRec, 0)
	for _, r := range s.state.records {
		if r.PatientID == id {
			out = append(out, r)
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"records": out})
}

func (s *Server) handleGetRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, r := range s.state.records {
		if r.ID == id {
			return c.JSON(http.StatusOK, map[string]any{"record": r})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "record not found")
}

// -- IoT --

func (s *Server) handleIoTCommand(c echo.Context) error {
	var body struct {
		Cmd          string `json:"cmd"`
		CitaID       int64  `json:"citaId"`
		ExerciseType string `json:"exerciseType"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if body.Cmd != "START" && body.Cmd != "STOP" {
		return echo.NewHTTPError(http.StatusBadRequest, "cmd must be START or STOP")
	}
	return c.JSON(http.StatusOK, map[string]any{"accepted": true, "cmd": body.Cmd, "citaId": body.CitaID})
}

func (s *Server) handleIoTStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"online": true, "device": "rehab-01"})
}
