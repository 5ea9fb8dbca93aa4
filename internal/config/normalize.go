package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStimuli(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStimuli() error {
	var err error
	c.Stimuli.IdentityDir = strings.TrimSpace(c.Stimuli.IdentityDir)
	if c.Stimuli.IdentityDir == "" {
		c.Stimuli.IdentityDir = defaultIdentityDir
	}
	if c.Stimuli.IdentityDir, err = expandPath(c.Stimuli.IdentityDir); err != nil {
		return fmt.Errorf("stimuli.identity_dir: %w", err)
	}
	c.Stimuli.CategoryDir = strings.TrimSpace(c.Stimuli.CategoryDir)
	if c.Stimuli.CategoryDir == "" {
		c.Stimuli.CategoryDir = defaultCategoryDir
	}
	if c.Stimuli.CategoryDir, err = expandPath(c.Stimuli.CategoryDir); err != nil {
		return fmt.Errorf("stimuli.category_dir: %w", err)
	}
	c.Stimuli.ImageExt = strings.TrimSpace(c.Stimuli.ImageExt)
	if c.Stimuli.ImageExt == "" {
		c.Stimuli.ImageExt = defaultImageExt
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	if c.Output.Dir == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if strings.TrimSpace(c.Output.FilePrefix) == "" {
		c.Output.FilePrefix = defaultFilePrefix
	}
	c.Output.ManifestPath = strings.TrimSpace(c.Output.ManifestPath)
	if c.Output.ManifestPath == "" {
		c.Output.ManifestPath = filepath.Join(c.Output.Dir, defaultManifestFile)
	}
	if c.Output.ManifestPath, err = expandPath(c.Output.ManifestPath); err != nil {
		return fmt.Errorf("output.manifest_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	if c.Logging.Dir != "" {
		if expanded, err := expandPath(c.Logging.Dir); err == nil {
			c.Logging.Dir = expanded
		}
	}
}
