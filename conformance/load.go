package conformance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlCycle is the on-disk form of one stimulus cycle: the input values
// staged before the cycle settles, and whether the cycle ends in a rising
// clock edge or a combinational-only settle.
type yamlCycle struct {
	Pokes     map[string]uint64 `yaml:"pokes"`
	ClockEdge bool              `yaml:"clock_edge"`
}

// yamlStimulus is the root of a stimulus file.
type yamlStimulus struct {
	Cycles []yamlCycle `yaml:"cycles"`
}

// LoadStimulusFile reads a stimulus sequence from a YAML file, so a
// conformance run can be driven from a checked-in vector file rather than
// built in code. Schema:
//
//	cycles:
//	  - pokes: {a: 1, b: 1}
//	    clock_edge: false
//	  - pokes: {rst: 0}
//	    clock_edge: true
func LoadStimulusFile(path string) (*Stimulus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stimulus file: %w", err)
	}

	var root yamlStimulus
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse stimulus file %s: %w", path, err)
	}

	stim := NewStimulus()
	for _, c := range root.Cycles {
		for port, v := range c.Pokes {
			stim.WithPokeScalar(port, v)
		}
		if c.ClockEdge {
			stim.WithClockEdge()
		} else {
			stim.WithCycle()
		}
	}
	return stim, nil
}
