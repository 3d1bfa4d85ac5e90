package docset

// Config holds the settings of a docset build. Values come from an optional
// config file and from command-line flags, flags taking precedence.
type Config struct {
	Name           string   `yaml:"name" json:"name"`
	Destination    string   `yaml:"destination" json:"destination"`
	Icon           string   `yaml:"icon" json:"icon"`
	IndexPage      string   `yaml:"index_page" json:"index_page"`
	Version        string   `yaml:"version" json:"version"`
	Keywords       []string `yaml:"keywords" json:"keywords"`
	PlatformFamily string   `yaml:"platform_family" json:"platform_family"`

	// Jobs is the number of files copied concurrently.
	Jobs int `yaml:"jobs" json:"jobs"`

	// Verify re-reads every copied file and compares digests.
	Verify bool `yaml:"verify" json:"verify"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{Jobs: 1}
}

// Merge overrides c with the non-zero values of other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Name != "" {
		c.Name = other.Name
	}
	if other.Destination != "" {
		c.Destination = other.Destination
	}
	if other.Icon != "" {
		c.Icon = other.Icon
	}
	if other.IndexPage != "" {
		c.IndexPage = other.IndexPage
	}
	if other.Version != "" {
		c.Version = other.Version
	}
	if len(other.Keywords) > 0 {
		c.Keywords = other.Keywords
	}
	if other.PlatformFamily != "" {
		c.PlatformFamily = other.PlatformFamily
	}
	if other.Jobs != 0 {
		c.Jobs = other.Jobs
	}
	if other.Verify {
		c.Verify = true
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return Errorf(EINVALID, "jobs must be positive, got %d", c.Jobs)
	}
	return nil
}

// Docset returns the docset identity described by c. Name must already be
// resolved; Version is used verbatim.
func (c *Config) Docset() *Docset {
	return &Docset{
		Name:           c.Name,
		Version:        c.Version,
		Keywords:       c.Keywords,
		IndexPage:      c.IndexPage,
		PlatformFamily: c.PlatformFamily,
	}
}
