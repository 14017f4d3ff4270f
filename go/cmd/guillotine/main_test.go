// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	sender    = "0x1000000000000000000000000000000000000000"
	recipient = "0x2000000000000000000000000000000000000000"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"guillotine"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func fundedPreState(t *testing.T) string {
	return writeFile(t, "prestate.json", `{
		"`+sender+`": {"balance": "0x64"},
		"`+recipient+`": {"balance": "0x0", "storage": {
			"0x0000000000000000000000000000000000000000000000000000000000000001":
			"0x0000000000000000000000000000000000000000000000000000000000000005"
		}}
	}`)
}

func TestRun_TransferSucceeds(t *testing.T) {
	out, err := runApp(t, "run", "--engine", "script", "--prestate", fundedPreState(t), "--to", recipient, "--value", "10")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"result:   success", "gas used: 21000 (", "output:   0x\n", "refund:   0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestRun_InsufficientBalanceReverts(t *testing.T) {
	out, err := runApp(t, "run", "--engine", "script", "--to", recipient, "--value", "10", "--gas", "50000")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "result:   revert") || !strings.Contains(out, "gas used: 50000") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "refund") {
		t.Errorf("reverted transactions should not report a refund:\n%s", out)
	}
}

func TestRun_CreationChargesInitCode(t *testing.T) {
	out, err := runApp(t, "run", "--engine", "script", "--input", "0x6000")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "gas used: 53020"; !strings.Contains(out, want) {
		t.Errorf("output does not contain %q:\n%s", want, out)
	}
}

func TestRun_AccessListIsCharged(t *testing.T) {
	out, err := runApp(t, "run", "--engine", "script", "--to", recipient,
		"--access-list", recipient, "--access-list", recipient+":1",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "gas used: 25300"; !strings.Contains(out, want) {
		t.Errorf("output does not contain %q:\n%s", want, out)
	}
}

func TestRun_AccessListBeforeBerlinIsRejected(t *testing.T) {
	_, err := runApp(t, "run", "--engine", "script", "--to", recipient, "--revision", "Istanbul", "--access-list", recipient)
	if err == nil || !strings.Contains(err.Error(), "transaction failed") {
		t.Errorf("expected transaction failure, got %v", err)
	}
}

func TestRun_InvalidFlagsAreReported(t *testing.T) {
	tests := map[string][]string{
		"from":        {"--from", "0x12"},
		"to":          {"--to", "abc"},
		"value":       {"--value", "ten"},
		"input":       {"--input", "0x1"},
		"revision":    {"--revision", "Paris"},
		"access-list": {"--access-list", recipient + ":x"},
		"chain-id":    {"--chain-id", "0xzz"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := runApp(t, append([]string{"run", "--engine", "script"}, args...)...)
			if err == nil || !strings.Contains(err.Error(), "--"+name) {
				t.Errorf("expected error naming --%s, got %v", name, err)
			}
		})
	}
}

func TestRun_UnknownEngineIsReported(t *testing.T) {
	_, err := runApp(t, "run", "--engine", "no-such-engine", "--to", recipient)
	if err == nil || !strings.Contains(err.Error(), "no-such-engine") {
		t.Errorf("expected unknown engine error, got %v", err)
	}
}

func TestRun_DumpPrintsPreState(t *testing.T) {
	out, err := runApp(t, "run", "--engine", "script", "--prestate", fundedPreState(t), "--to", recipient, "--dump")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{`"` + sender + `"`, `"balance": "0x` + strings.Repeat("0", 62) + `64"`, `"0x0000000000000000000000000000000000000000000000000000000000000005"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %s:\n%s", want, out)
		}
	}
}

func TestRun_MissingPreStateIsReported(t *testing.T) {
	_, err := runApp(t, "run", "--engine", "script", "--prestate", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Errorf("expected missing pre-state to be reported")
	}
}

func TestRun_MetricsArePrinted(t *testing.T) {
	out, err := runApp(t, "run", "--engine", "script", "--to", recipient, "--metrics")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{`guillotine_transactions_total{result="success"} 1`, "guillotine_live_handles 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics do not contain %q:\n%s", want, out)
		}
	}
}

func TestRun_ConfigFileIsApplied(t *testing.T) {
	config := writeFile(t, "config.toml", "[Engine]\nMaxCallDepth = 2000\n")
	_, err := runApp(t, "--config", config, "run", "--engine", "script", "--to", recipient)
	if err == nil || !strings.Contains(err.Error(), "max call depth") {
		t.Errorf("expected invalid call depth to be reported, got %v", err)
	}
}

func TestApp_InvalidLogSettingsAreRejected(t *testing.T) {
	if _, err := runApp(t, "--log-level", "loud", "engines"); err == nil {
		t.Errorf("expected invalid log level to be rejected")
	}
	if _, err := runApp(t, "--log-format", "xml", "engines"); err == nil {
		t.Errorf("expected invalid log format to be rejected")
	}
}

func TestHardforks_ListsAllRevisions(t *testing.T) {
	out, err := runApp(t, "hardforks")
	if err != nil {
		t.Fatalf("hardforks failed: %v", err)
	}
	table := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			t.Fatalf("unexpected line %q", line)
		}
		table[fields[0]] = fields[1]
	}
	want := map[string]string{
		"REVISION":    "HARDFORK",
		"Petersburg":  "Constantinople",
		"MuirGlacier": "Istanbul",
		"Cancun":      "Cancun",
		"Osaka":       "Osaka",
	}
	for revision, hardfork := range want {
		if got := table[revision]; got != hardfork {
			t.Errorf("unexpected hardfork for %s, wanted %q, got %q", revision, hardfork, got)
		}
	}
}

func TestEngines_ListsRegisteredExecutors(t *testing.T) {
	out, err := runApp(t, "engines")
	if err != nil {
		t.Fatalf("engines failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[len(lines)-1] != scriptEngine {
		t.Errorf("script engine is not listed last: %v", lines)
	}
	if !strings.Contains(out, "evmc\n") {
		t.Errorf("evmc executor is not listed:\n%s", out)
	}
}

func TestExample_ReportsUsageAndUnknownExamples(t *testing.T) {
	_, err := runApp(t, "example", "--engine", "script")
	if err == nil || !strings.Contains(err.Error(), "sha3") {
		t.Errorf("expected list of examples, got %v", err)
	}
	_, err = runApp(t, "example", "--engine", "script", "fib", "10")
	if err == nil || !strings.Contains(err.Error(), "unknown example") {
		t.Errorf("expected unknown example error, got %v", err)
	}
	_, err = runApp(t, "example", "--engine", "script", "sha3", "ten")
	if err == nil || !strings.Contains(err.Error(), "invalid argument") {
		t.Errorf("expected invalid argument error, got %v", err)
	}
}

func TestExample_ScriptEngineProducesNoResult(t *testing.T) {
	_, err := runApp(t, "example", "--engine", "script", "sha3", "1")
	if err == nil || !strings.Contains(err.Error(), "unexpected length of output") {
		t.Errorf("expected missing output to be reported, got %v", err)
	}
}
