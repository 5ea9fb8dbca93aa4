package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStimuli(); err != nil {
		return err
	}
	if err := c.validateDesign(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStimuli() error {
	if c.Stimuli.IdentityDir == "" {
		return errors.New("stimuli.identity_dir must be set")
	}
	if c.Stimuli.CategoryDir == "" {
		return errors.New("stimuli.category_dir must be set")
	}
	if !strings.HasPrefix(c.Stimuli.ImageExt, ".") {
		return fmt.Errorf("stimuli.image_ext must start with a dot, got %q", c.Stimuli.ImageExt)
	}
	if c.Stimuli.ExemplarsPerCategory < 2 {
		return fmt.Errorf("stimuli.exemplars_per_category must be at least 2 to form pairs, got %d", c.Stimuli.ExemplarsPerCategory)
	}
	if c.Stimuli.ExemplarsPerCategory > 9 {
		return fmt.Errorf("stimuli.exemplars_per_category must fit a single digit suffix, got %d", c.Stimuli.ExemplarsPerCategory)
	}
	if c.Stimuli.ExemplarsPerIdentity != 1 {
		return fmt.Errorf("stimuli.exemplars_per_identity must be 1, got %d", c.Stimuli.ExemplarsPerIdentity)
	}
	return nil
}

func (c *Config) validateDesign() error {
	if c.Design.CategoriesPerCondition < 1 {
		return fmt.Errorf("design.categories_per_condition must be positive, got %d", c.Design.CategoriesPerCondition)
	}
	if c.Design.Repeats < 1 {
		return fmt.Errorf("design.repeats must be positive, got %d", c.Design.Repeats)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Dir == "" {
		return errors.New("output.dir must be set")
	}
	if strings.ContainsAny(c.Output.FilePrefix, "/\\") {
		return fmt.Errorf("output.file_prefix must not contain path separators, got %q", c.Output.FilePrefix)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
