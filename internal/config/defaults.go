package config

const (
	defaultIdentityDir            = "images/identity"
	defaultCategoryDir            = "images/category"
	defaultImageExt               = ".png"
	defaultExemplarsPerCategory   = 4
	defaultExemplarsPerIdentity   = 1
	defaultCategoriesPerCondition = 2
	defaultRepeats                = 8
	defaultSeed                   = 42
	defaultOutputDir              = "trial_lists"
	defaultFilePrefix             = "trials_condition_"
	defaultManifestFile           = "manifest.db"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Stimuli: Stimuli{
			IdentityDir:          defaultIdentityDir,
			CategoryDir:          defaultCategoryDir,
			ImageExt:             defaultImageExt,
			ExemplarsPerCategory: defaultExemplarsPerCategory,
			ExemplarsPerIdentity: defaultExemplarsPerIdentity,
		},
		Design: Design{
			CategoriesPerCondition: defaultCategoriesPerCondition,
			Repeats:                defaultRepeats,
			Seed:                   defaultSeed,
		},
		Output: Output{
			Dir:             defaultOutputDir,
			FilePrefix:      defaultFilePrefix,
			ManifestEnabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
