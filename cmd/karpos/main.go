package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/karpos/karpos/internal/config"
	"github.com/karpos/karpos/internal/domain/appointment"
	"github.com/karpos/karpos/internal/domain/auth"
	"github.com/karpos/karpos/internal/domain/doctor"
	"github.com/karpos/karpos/internal/domain/iot"
	"github.com/karpos/karpos/internal/domain/patient"
	"github.com/karpos/karpos/internal/domain/records"
	"github.com/karpos/karpos/internal/mockserver"
	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/session"
	"github.com/karpos/karpos/internal/platform/validate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "karpos",
		Short: "Karpos medical appointment platform client",
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(recordsCmd())
	rootCmd.AddCommand(iotCmd())
	rootCmd.AddCommand(mockServerCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a command needs.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  session.Store
	client *httpclient.Client
}

func newApp() (*app, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := session.NewFileStore(cfg.TokenFile)

	opts := []httpclient.Option{
		httpclient.WithTimeout(cfg.Timeout()),
		httpclient.WithLogger(logger),
	}
	if cfg.Tracing {
		opts = append(opts, httpclient.WithTracing())
	}
	client, err := httpclient.New(cfg.BaseURL, store, opts...)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: store, client: client}, nil
}

// printJSON writes the command result to stdout; diagnostics go to stderr.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			a, err := newApp()
			if err != nil {
				return err
			}
			svc := auth.NewService(a.client, a.store, a.logger)
			id, err := svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"user_id": id.SubjectID,
				"email":   id.Email,
				"role":    id.Role,
				"expires": id.ExpiresAt,
			})
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return auth.NewService(a.client, a.store, a.logger).Logout(cmd.Context())
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := auth.NewService(a.client, a.store, a.logger).WhoAmI()
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"user_id": id.SubjectID,
				"email":   id.Email,
				"role":    id.Role,
				"expires": id.ExpiresAt,
			})
		},
	}
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the current user's patient or doctor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := auth.NewService(a.client, a.store, a.logger).WhoAmI()
			if err != nil {
				return err
			}
			switch id.Role {
			case session.RoleDoctor:
				doc, err := doctor.NewService(a.client, a.store, a.logger).MyProfile(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(doc)
			case session.RolePatient:
				p, err := patient.NewService(a.client, a.store, a.logger).MyProfile(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(p)
			default:
				return errors.New("profiles exist only for doctor and patient accounts")
			}
		},
	}
}

func appointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Manage appointments",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetInt64("patient")
			doctorID, _ := cmd.Flags().GetInt64("doctor")

			a, err := newApp()
			if err != nil {
				return err
			}
			svc := appointment.NewService(a.client, a.logger)

			ctx := cmd.Context()
			switch {
			case patientID != 0:
				list, err := svc.ListByPatient(ctx, patientID)
				if err != nil {
					return err
				}
				return printJSON(list)
			case doctorID != 0:
				list, err := svc.ListByDoctor(ctx, doctorID)
				if err != nil {
					return err
				}
				return printJSON(list)
			default:
				list, err := svc.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(list)
			}
		},
	}
	listCmd.Flags().Int64("patient", 0, "filter by patient id")
	listCmd.Flags().Int64("doctor", 0, "filter by doctor id")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id := validate.PositiveInt(args[0], 1, a.logger)
			appt, err := appointment.NewService(a.client, a.logger).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(appt)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			doctorID, _ := cmd.Flags().GetString("doctor")
			date, _ := cmd.Flags().GetString("date")
			timeSlot, _ := cmd.Flags().GetString("time")
			amount, _ := cmd.Flags().GetFloat64("amount")
			notes, _ := cmd.Flags().GetString("notes")

			a, err := newApp()
			if err != nil {
				return err
			}
			appt, err := appointment.NewService(a.client, a.logger).Create(cmd.Context(), appointment.CreateInput{
				PatientID:     patientID,
				DoctorID:      doctorID,
				Date:          date,
				Time:          timeSlot,
				PaymentAmount: amount,
				Notes:         notes,
			})
			if err != nil {
				return err
			}
			return printJSON(appt)
		},
	}
	createCmd.Flags().String("patient", "", "patient id")
	createCmd.Flags().String("doctor", "", "doctor id")
	createCmd.Flags().String("date", "", "date (YYYY-MM-DD)")
	createCmd.Flags().String("time", "", "time slot (HH:MM)")
	createCmd.Flags().Float64("amount", 0, "payment amount")
	createCmd.Flags().String("notes", "", "free-text notes")
	createCmd.MarkFlagRequired("patient")
	createCmd.MarkFlagRequired("doctor")
	createCmd.MarkFlagRequired("date")
	createCmd.MarkFlagRequired("time")

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Update an appointment's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id := validate.PositiveInt(args[0], 1, a.logger)
			appt, err := appointment.NewService(a.client, a.logger).UpdateStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return printJSON(appt)
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id := validate.PositiveInt(args[0], 1, a.logger)
			appt, err := appointment.NewService(a.client, a.logger).Cancel(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(appt)
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, statusCmd, cancelCmd)
	return cmd
}

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse doctors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			list, err := doctor.NewService(a.client, a.store, a.logger).List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id := validate.PositiveInt(args[0], 1, a.logger)
			doc, err := doctor.NewService(a.client, a.store, a.logger).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(doc)
		},
	})

	return cmd
}

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Browse patients",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			list, err := patient.NewService(a.client, a.store, a.logger).List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id := validate.PositiveInt(args[0], 1, a.logger)
			p, err := patient.NewService(a.client, a.store, a.logger).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	})

	return cmd
}

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Browse medical records",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a patient's medical records",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetInt64("patient")

			a, err := newApp()
			if err != nil {
				return err
			}
			list, err := records.NewService(a.client, a.logger).ListByPatient(cmd.Context(), patientID)
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
	listCmd.Flags().Int64("patient", 0, "patient id")
	listCmd.MarkFlagRequired("patient")

	cmd.AddCommand(listCmd)
	return cmd
}

func iotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iot",
		Short: "Drive rehabilitation device sessions",
	}

	sendCmd := func(use, short string, command iot.Command) *cobra.Command {
		c := &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				citaID, _ := cmd.Flags().GetString("appointment")
				exercise, _ := cmd.Flags().GetString("exercise")

				a, err := newApp()
				if err != nil {
					return err
				}
				svc := iot.NewService(a.client, a.logger)
				if err := svc.SendCommand(cmd.Context(), command, citaID, exercise); err != nil {
					return err
				}
				return printJSON(map[string]any{"sent": string(command)})
			},
		}
		c.Flags().String("appointment", "", "appointment id")
		c.Flags().String("exercise", "", "exercise type")
		c.MarkFlagRequired("appointment")
		return c
	}

	cmd.AddCommand(sendCmd("start", "Start a device session", iot.CommandStart))
	cmd.AddCommand(sendCmd("stop", "Stop a device session", iot.CommandStop))

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Probe the IoT bridge's liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			status, err := iot.NewService(a.client, a.logger).Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(status)
		},
	})

	return cmd
}

func mockServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory Karpos backend for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			srv := mockserver.New(mockserver.Options{Logger: a.logger})

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(":" + a.cfg.MockPort)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
				a.logger.Info().Msg("shutting down mock server")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
}
