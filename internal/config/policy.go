package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/volatility-agent/internal/validation"
)

var (
	ErrPolicyNotFound = errors.New("policy file not found")
	ErrPolicyParsing  = errors.New("policy parsing failed")
)

// PolicyFile is the on-disk form of the validation policy.
type PolicyFile struct {
	Symbols  []string `yaml:"symbols"`
	Horizons []int    `yaml:"horizons"`
}

// LoadPolicy reads the validation policy from path. An empty path yields the
// built-in policy. A missing file yields the built-in policy and ErrPolicyNotFound.
func LoadPolicy(path string) (*validation.Policy, error) {
	if path == "" {
		return validation.DefaultPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return validation.DefaultPolicy(), ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPolicyParsing, err)
	}
	for _, h := range file.Horizons {
		if h <= 0 {
			return nil, fmt.Errorf("%w: horizon must be positive, got %d", ErrPolicyParsing, h)
		}
	}
	return validation.NewPolicy(file.Symbols, file.Horizons), nil
}
