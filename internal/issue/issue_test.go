// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func allIds() []Id {
	return []Id{
		SourceNotFoundId,
		StructuredLoadFailedId,
		CommandNotFoundId,
		UsageId,
		ConfigLoadFailedId,
		ScriptExecutionFailedId,
	}
}

func stubRender(t *testing.T) {
	t.Helper()
	originalRender := render
	t.Cleanup(func() { render = originalRender })
	render = func(in string, _ string) (string, error) {
		return in, nil
	}
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds() {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if SourceNotFoundId != 1 {
		t.Errorf("SourceNotFoundId = %d, want 1", SourceNotFoundId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{SourceNotFoundId, false, "Environment not found"},
		{StructuredLoadFailedId, false, "Failed to load environment file"},
		{CommandNotFoundId, false, "Command not found"},
		{UsageId, false, "Missing arguments"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{ScriptExecutionFailedId, false, "Command failed to start"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
			}
			if !strings.Contains(issue.Markdown(), tt.contains) {
				t.Errorf("Get(%d).Markdown() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != len(allIds()) {
		t.Fatalf("Values() returned %d issues, want %d", len(issues), len(allIds()))
	}
	for i, issue := range issues {
		if issue.Id() != allIds()[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), allIds()[i])
		}
		if strings.TrimSpace(issue.Markdown()) == "" {
			t.Errorf("Issue %d has empty markdown", issue.Id())
		}
	}
}

func TestIssue_SourceNotFoundLinksProject(t *testing.T) {
	md := Get(SourceNotFoundId).Markdown()
	if !strings.Contains(md, "<https://github.com/toddbluhm/env-cmd>") {
		t.Errorf("Markdown() should list the external link:\n%s", md)
	}
}

func TestConfigIssueListsEveryField(t *testing.T) {
	md := Get(ConfigLoadFailedId).Markdown()
	for _, field := range []string{"rc_file", "use_shell", "no_override", "silent", "verbose", "color_scheme"} {
		if !strings.Contains(md, field) {
			t.Errorf("config issue does not mention %q", field)
		}
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	stubRender(t)

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		extLinks: []HttpLink{"https://external.example.com", "https://other.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	for _, want := range []string{"See also", "<https://external.example.com>", "<https://other.example.com>"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output missing %q:\n%s", want, rendered)
		}
	}
	if strings.Index(rendered, "external.example.com") > strings.Index(rendered, "other.example.com") {
		t.Error("links should keep their order")
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	stubRender(t)

	testIssue := &Issue{
		id:    Id(9998),
		mdMsg: "# Test Issue\n\nNo links here.",
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
