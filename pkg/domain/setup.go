package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Setup holds the representative's fields that outlive a single call.
type Setup struct {
	RepName   string    `json:"repName" yaml:"repName"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Apply copies the setup fields into c.
func (s Setup) Apply(c CallContext) CallContext {
	if s.RepName != "" {
		c.RepName = s.RepName
	}
	return c
}

// ValidateProfile rejects profile names that cannot be stored safely as a
// file name or a key suffix.
func ValidateProfile(profile string) error {
	if profile == "" {
		return errors.New("profile cannot be empty")
	}
	if strings.ContainsAny(profile, `/\:`) || profile == "." || profile == ".." {
		return fmt.Errorf("invalid profile name %q", profile)
	}
	return nil
}
