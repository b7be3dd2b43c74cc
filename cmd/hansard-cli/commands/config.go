package commands

import (
	"hansard-scraper/internal/components/fetcher"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/internal/scrapers/archive"
	"hansard-scraper/internal/scrapers/current"
	"hansard-scraper/internal/scrapers/fanout"
	"hansard-scraper/lib/configutil"
	otlp "hansard-scraper/lib/telemetry"
	"time"
)

const defaultConfigName = "hansard.json5"

type Config struct {
	ArchiveBaseUrl string `json:"archive_base_url"`
	CurrentBaseUrl string `json:"current_base_url"`

	TimeoutSeconds   int     `json:"timeout_seconds"`
	UserAgent        string  `json:"user_agent"`
	RateLimit        float64 `json:"rate_limit"`
	CloudflareBypass bool    `json:"cloudflare_bypass"`
	MaxConcurrency   int     `json:"max_concurrency"`

	// list fragments are merged into the previous contribution unless this is set
	SplitListFragments    bool   `json:"split_list_fragments"`
	ListFragmentSeparator string `json:"list_fragment_separator"`

	Otlp otlp.OtlpConfig `json:"otlp"`
}

func defaultConfig() Config {
	return Config{
		ArchiveBaseUrl:        archive.DefaultBaseUrl,
		CurrentBaseUrl:        current.DefaultBaseUrl,
		TimeoutSeconds:        30,
		UserAgent:             fetcher.DefaultUserAgent,
		ListFragmentSeparator: hansard.DefaultBuilderOptions().ListFragmentSeparator,
	}
}

func loadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigName
	}
	return configutil.ReadWithDefaults(path, defaultConfig())
}

func (c Config) fetcherOptions(dumpDirectory string) fetcher.Options {
	return fetcher.Options{
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgent:        c.UserAgent,
		RateLimit:        c.RateLimit,
		CloudflareBypass: c.CloudflareBypass,
		DumpDirectory:    dumpDirectory,
	}
}

func (c Config) builderOptions() hansard.BuilderOptions {
	return hansard.BuilderOptions{
		ListFragmentSeparator: c.ListFragmentSeparator,
		MergeListFragments:    !c.SplitListFragments,
	}
}

func (c Config) fanoutOptions() fanout.Options {
	return fanout.Options{MaxConcurrency: c.MaxConcurrency}
}

type scrapers struct {
	archive archive.Scraper
	current current.Scraper
}

func newScrapers(c Config, f fetcher.Fetcher, tel telemetry.API) (scrapers, error) {
	archiveScraper, err := archive.NewScraper(f, archive.Options{
		BaseUrl: c.ArchiveBaseUrl,
		Builder: c.builderOptions(),
		Fanout:  c.fanoutOptions(),
	}, tel)
	if err != nil {
		return scrapers{}, err
	}
	currentScraper, err := current.NewScraper(f, current.Options{
		BaseUrl: c.CurrentBaseUrl,
		Builder: c.builderOptions(),
		Fanout:  c.fanoutOptions(),
	}, tel)
	if err != nil {
		return scrapers{}, err
	}
	return scrapers{archive: archiveScraper, current: currentScraper}, nil
}
