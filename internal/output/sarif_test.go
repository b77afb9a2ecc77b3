// # internal/output/sarif_test.go
package output

import (
	"encoding/json"
	"strings"
	"testing"

	"logshift/internal/lint"
	"logshift/internal/parser"
)

func sampleReports() map[string][]lint.Report {
	return map[string][]lint.Report{
		"/project/src/server.js": {
			{
				Method:   lint.MethodError,
				Message:  "No native console.error allowed, use moduleLogger.error instead",
				Location: parser.Location{File: "/project/src/server.js", Line: 12, Column: 3},
			},
		},
		"/project/src/util.ts": {
			{
				Method:   lint.MethodInfo,
				Message:  "No native console.info allowed, use moduleLogger.info instead",
				Location: parser.Location{File: "/project/src/util.ts", Line: 4, Column: 1},
			},
		},
	}
}

func TestGenerateSARIF(t *testing.T) {
	data, err := GenerateSARIF("/project", sampleReports())
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if doc.Version != "2.1.0" {
		t.Errorf("unexpected version %q", doc.Version)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(doc.Runs))
	}

	run := doc.Runs[0]
	if run.Tool.Driver.Name != "logshift" {
		t.Errorf("unexpected tool name %q", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "LS001" {
		t.Errorf("unexpected rules: %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}

	// Results are sorted by path: server.js before util.ts.
	first := run.Results[0]
	if first.RuleID != "LS001" || first.Level != "warning" {
		t.Errorf("unexpected result: %+v", first)
	}
	loc := first.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "src/server.js" {
		t.Errorf("URI must be relative to the project root, got %q", loc.ArtifactLocation.URI)
	}
	if loc.Region.StartLine != 12 {
		t.Errorf("unexpected start line %d", loc.Region.StartLine)
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleReports(), 7)

	for _, want := range []string{
		"src/server.js",
		"No native console.error allowed, use moduleLogger.error instead",
		"2 console call(s) in 2 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextClean(t *testing.T) {
	out := RenderText(nil, 3)
	if !strings.Contains(out, "No console calls found (3 files scanned)") {
		t.Errorf("unexpected clean output:\n%s", out)
	}
}
