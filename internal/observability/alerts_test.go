package observability

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type alertFile struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestApprovalAlertRules(t *testing.T) {
	path := filepath.Join("..", "..", "deploy", "prometheus", "alerts", "approvals.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read alert file: %v", err)
	}

	var parsed alertFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal alert file: %v", err)
	}

	if len(parsed.Groups) == 0 {
		t.Fatal("expected at least one alert group")
	}

	var approvalsGroup *alertGroup
	for i := range parsed.Groups {
		if parsed.Groups[i].Name == "approvals" {
			approvalsGroup = &parsed.Groups[i]
			break
		}
	}
	if approvalsGroup == nil {
		t.Fatal("approvals alert group missing")
	}

	expected := map[string]struct {
		severity string
		runbook  string
	}{
		"HighErrorRate":          {severity: "critical", runbook: "docs/runbook-ops.md#high-error-rate"},
		"HighLatency":            {severity: "warning", runbook: "docs/runbook-ops.md#high-latency"},
		"ApprovalBacklogGrowing": {severity: "warning", runbook: "docs/runbook-ops.md#approval-backlog"},
		"JobFailures":            {severity: "warning", runbook: "docs/runbook-ops.md#job-failures"},
	}

	if len(approvalsGroup.Rules) != len(expected) {
		t.Fatalf("expected %d rules, got %d", len(expected), len(approvalsGroup.Rules))
	}

	for _, rule := range approvalsGroup.Rules {
		want, ok := expected[rule.Alert]
		if !ok {
			t.Fatalf("unexpected rule %q", rule.Alert)
		}
		if rule.Labels["severity"] != want.severity {
			t.Fatalf("rule %s severity mismatch: %s", rule.Alert, rule.Labels["severity"])
		}
		if rule.Annotations["runbook"] != want.runbook {
			t.Fatalf("rule %s runbook mismatch: %s", rule.Alert, rule.Annotations["runbook"])
		}
		if rule.Annotations["summary"] == "" {
			t.Fatalf("rule %s must include a summary annotation", rule.Alert)
		}
		if rule.Expr == "" {
			t.Fatalf("rule %s must define an expression", rule.Alert)
		}
		if rule.For == "" {
			t.Fatalf("rule %s must define a hold duration", rule.Alert)
		}
	}
}
