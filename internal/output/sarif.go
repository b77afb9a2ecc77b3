// # internal/output/sarif.go
package output

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"logshift/internal/lint"
)

// SARIF v2.1.0 schema, see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDConsole = "LS001"

	toolName    = "logshift"
	toolVersion = "1.0.0"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from per-file reports. File
// URIs are made relative to projectRoot; absolute paths are never included
// so that reports are safe to share.
func GenerateSARIF(projectRoot string, reportsByFile map[string][]lint.Report) ([]byte, error) {
	paths := make([]string, 0, len(reportsByFile))
	for path := range reportsByFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	results := make([]sarifResult, 0)
	for _, path := range paths {
		for _, report := range reportsByFile[path] {
			results = append(results, sarifResult{
				RuleID:  ruleIDConsole,
				Level:   "warning",
				Message: sarifMessage{Text: report.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{
							URI:       relativeURI(projectRoot, path),
							URIBaseID: "PROJECTROOT",
						},
						Region: &sarifRegion{
							StartLine:   report.Location.Line,
							StartColumn: report.Location.Column,
						},
					},
				}},
			})
		}
	}

	doc := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:    toolName,
					Version: toolVersion,
					Rules: []sarifRule{{
						ID:               ruleIDConsole,
						Name:             "NoNativeConsole",
						ShortDescription: sarifMessage{Text: "Direct console logging calls must go through the structured module logger."},
						DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
					}},
				},
			},
			Results: results,
		}},
	}

	return json.MarshalIndent(doc, "", "  ")
}

func relativeURI(projectRoot, path string) string {
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
