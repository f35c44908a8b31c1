package config

import (
	"fmt"
	"sort"
)

// ProfileNames returns profile names sorted alphabetically
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) AddProfile(name string, p Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if _, exists := c.Profiles[name]; exists {
		return fmt.Errorf("profile '%s' already exists", name)
	}
	if err := ValidateProfile(p); err != nil {
		return err
	}
	c.Profiles[name] = p
	return nil
}

func (c *Config) UpdateProfile(name string, p Profile) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	if err := ValidateProfile(p); err != nil {
		return err
	}
	c.Profiles[name] = p
	if c.ActiveProfile == name {
		return c.setCurrentProfile()
	}
	return nil
}

// DeleteProfile removes a profile. Deleting the active profile activates another one,
// and deleting the last profile recreates the default.
func (c *Config) DeleteProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if len(c.Profiles) == 0 {
		c.Profiles[DefaultProfile] = DefaultProfileValues()
		c.ActiveProfile = DefaultProfile
	} else if c.ActiveProfile == name {
		c.ActiveProfile = c.ProfileNames()[0]
	}
	return c.setCurrentProfile()
}

func (c *Config) SwitchProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

func ValidateProfile(p Profile) error {
	switch p.Generator {
	case "", GeneratorHTTP:
		return nil
	case GeneratorOpenAI:
		if p.APIKey == "" {
			return fmt.Errorf("openai generator requires an API key")
		}
		return nil
	default:
		return fmt.Errorf("unknown generator %q (want %s or %s)", p.Generator, GeneratorHTTP, GeneratorOpenAI)
	}
}
