package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCommandTree(t *testing.T) {
	built := []*cobra.Command{
		loginCmd(), logoutCmd(), whoamiCmd(), profileCmd(),
		appointmentsCmd(), doctorsCmd(), patientsCmd(), recordsCmd(),
		iotCmd(), mockServerCmd(),
	}

	want := map[string]bool{
		"login": false, "logout": false, "whoami": false, "profile": false,
		"appointments": false, "doctors": false, "patients": false,
		"records": false, "iot": false, "mock-server": false,
	}
	for _, c := range built {
		if _, ok := want[c.Name()]; !ok {
			t.Errorf("unexpected command %q", c.Name())
			continue
		}
		want[c.Name()] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("command %q not built", name)
		}
	}
}

func TestAppointmentsSubcommands(t *testing.T) {
	cmd := appointmentsCmd()
	want := map[string]bool{"list": false, "get": false, "create": false, "status": false, "cancel": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("appointments subcommand %q missing", name)
		}
	}
}

func TestLoginRequiresFlags(t *testing.T) {
	cmd := loginCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("expected error when email/password flags are missing")
	}
}
