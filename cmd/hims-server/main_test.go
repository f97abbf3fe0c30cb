package main

import "testing"

func TestMigrateCmd_Subcommands(t *testing.T) {
	cmd := migrateCmd()

	want := map[string]bool{"up": false, "status": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected migrate subcommand %q", name)
		}
	}
}

func TestMigrateCmd_DirFlagDefaults(t *testing.T) {
	cmd := migrateCmd()
	for _, sub := range cmd.Commands() {
		f := sub.Flags().Lookup("dir")
		if f == nil {
			t.Fatalf("subcommand %q has no --dir flag", sub.Name())
		}
		if f.DefValue != "./migrations" {
			t.Errorf("subcommand %q --dir default = %q", sub.Name(), f.DefValue)
		}
	}
}

func TestServeCmd_Use(t *testing.T) {
	if serveCmd().Use != "serve" {
		t.Error("expected serve command")
	}
}
