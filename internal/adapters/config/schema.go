package config

import "gopkg.in/yaml.v3"

// Manifestfile represents the structure of the fragments.yaml manifest.
type Manifestfile struct {
	Fragments []FragmentDTO `yaml:"fragments"`
}

// FragmentDTO represents one fragment entry. Definition and Configuration are either a
// path string or an inline mapping.
type FragmentDTO struct {
	ID            string    `yaml:"id"`
	Definition    yaml.Node `yaml:"definition"`
	Configuration yaml.Node `yaml:"configuration"`
	Replace       bool      `yaml:"replace"`
}
