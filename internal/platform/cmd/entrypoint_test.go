package cmd

import (
	"context"
	"flag"
	"testing"
)

type testConfig struct {
	Source string `env:"CMD_TEST_SOURCE" envDefault:"https://example.com/list"`
	DBPath string `env:"CMD_TEST_DB_PATH" envDefault:"data/test.db"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_SOURCE", "env-source")
	t.Setenv("CMD_TEST_DB_PATH", "env-db")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Source, "source", cfgRef.Source, "source")
	fs.StringVar(&cfgRef.DBPath, "db-path", cfgRef.DBPath, "db path")

	if err := ParseArgs(fs, []string{"-source", "flag-source"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Source != "flag-source" {
		t.Fatalf("expected flag value for source, got %q", cfgRef.Source)
	}
	if cfgRef.DBPath != "env-db" {
		t.Fatalf("expected env value for db path, got %q", cfgRef.DBPath)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWithTelemetryRequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), "  ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWithTelemetryRequiresRun(t *testing.T) {
	err := RunWithTelemetry(context.Background(), ServiceHolectl, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWithTelemetryExecutesRun(t *testing.T) {
	t.Setenv("HOLECTL_OTEL_ENDPOINT", "")

	ran := false
	err := RunWithTelemetry(context.Background(), ServiceHolectl, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run with telemetry: %v", err)
	}
	if !ran {
		t.Fatal("expected run function to execute")
	}
}
