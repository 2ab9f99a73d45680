package report

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// stepLabels maps step numbers to the French descriptions shown as step
// headings. Unknown steps fall back to a generic label.
//
//go:embed labels.yaml
var labelsYAML []byte

var stepLabels map[int]string

func init() {
	if err := yaml.Unmarshal(labelsYAML, &stepLabels); err != nil {
		panic(fmt.Sprintf("report: bad embedded labels.yaml: %v", err))
	}
}

// StepLabel returns the human-readable description for a step number.
func StepLabel(step int) string {
	if label, ok := stepLabels[step]; ok {
		return label
	}
	return fmt.Sprintf("Étape %d", step)
}
