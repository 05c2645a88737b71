package site

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"
)

//go:embed sites.yaml
var defaultRegistryYAML []byte

// Config describes how to scrape one announcement listing page.
type Config struct {
	URL             string `yaml:"url" json:"url"`
	DomainName      string `yaml:"domain_name" json:"domain_name"`
	ParentSelector  string `yaml:"parent_selector" json:"parent_selector"`
	ArticleSelector string `yaml:"article_selector" json:"article_selector"`
	TitleSelector   string `yaml:"title_selector" json:"title_selector"`
	DateSelector    string `yaml:"date_selector" json:"date_selector"`
	MaxItems        int    `yaml:"max_items" json:"max_items"`
}

// Host returns the lowercased host of the config URL, or "" if the URL
// cannot be parsed.
func (c Config) Host() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Validate checks that the config is usable by the scraper.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DomainName) == "" {
		return errors.New("domain_name is required")
	}
	if strings.ContainsAny(c.DomainName, `/\`) {
		return fmt.Errorf("%s: domain_name must not contain path separators", c.DomainName)
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", c.DomainName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: url must be http or https, got %q", c.DomainName, c.URL)
	}

	selectors := []struct {
		name  string
		value string
	}{
		{"parent_selector", c.ParentSelector},
		{"article_selector", c.ArticleSelector},
		{"title_selector", c.TitleSelector},
		{"date_selector", c.DateSelector},
	}
	for _, s := range selectors {
		if strings.TrimSpace(s.value) == "" {
			return fmt.Errorf("%s: %s is required", c.DomainName, s.name)
		}
		if _, err := cascadia.ParseGroup(s.value); err != nil {
			return fmt.Errorf("%s: invalid %s %q: %w", c.DomainName, s.name, s.value, err)
		}
	}

	if c.MaxItems < 0 {
		return fmt.Errorf("%s: max_items must be >= 0, got %d", c.DomainName, c.MaxItems)
	}
	return nil
}

// Registry is an ordered, read-only list of site configs plus the set of
// hosts that skip TLS verification.
type Registry struct {
	sites  []Config
	bypass map[string]bool
}

type registryFile struct {
	Sites            []Config `yaml:"sites"`
	SSLBypassDomains []string `yaml:"ssl_bypass_domains"`
}

// NewRegistry builds a validated registry. The slices are copied so later
// changes by the caller do not leak in.
func NewRegistry(sites []Config, sslBypassDomains []string) (*Registry, error) {
	seen := make(map[string]bool, len(sites))
	for _, c := range sites {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if seen[c.DomainName] {
			return nil, fmt.Errorf("duplicate domain_name: %s", c.DomainName)
		}
		seen[c.DomainName] = true
	}
	// Stale output is removed by filename prefix, so no name may prefix another.
	for a := range seen {
		for b := range seen {
			if a != b && strings.HasPrefix(b, a) {
				return nil, fmt.Errorf("domain_name %s is a prefix of %s", a, b)
			}
		}
	}

	bypass := make(map[string]bool, len(sslBypassDomains))
	for _, d := range sslBypassDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			bypass[d] = true
		}
	}

	return &Registry{
		sites:  append([]Config(nil), sites...),
		bypass: bypass,
	}, nil
}

// Parse decodes a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	return NewRegistry(f.Sites, f.SSLBypassDomains)
}

// Default returns the registry compiled into the binary.
func Default() (*Registry, error) {
	return Parse(defaultRegistryYAML)
}

// Sites returns a copy of the configs in registry order.
func (r *Registry) Sites() []Config {
	return append([]Config(nil), r.sites...)
}

// Len returns the number of sites.
func (r *Registry) Len() int {
	return len(r.sites)
}

// Lookup finds a site by domain name.
func (r *Registry) Lookup(domainName string) (Config, bool) {
	for _, c := range r.sites {
		if c.DomainName == domainName {
			return c, true
		}
	}
	return Config{}, false
}

// Filter returns a registry restricted to the named domains, keeping
// registry order. Unknown names are reported as an error.
func (r *Registry) Filter(domainNames []string) (*Registry, error) {
	if len(domainNames) == 0 {
		return r, nil
	}

	want := make(map[string]bool, len(domainNames))
	for _, name := range domainNames {
		if _, ok := r.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown site: %s", name)
		}
		want[name] = true
	}

	filtered := make([]Config, 0, len(want))
	for _, c := range r.sites {
		if want[c.DomainName] {
			filtered = append(filtered, c)
		}
	}
	return &Registry{sites: filtered, bypass: r.bypass}, nil
}

// VerifyTLS reports whether certificates should be verified for rawURL.
// Hosts on the bypass list, and their subdomains, are not verified.
func (r *Registry) VerifyTLS(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for d := range r.bypass {
		if host == d || strings.HasSuffix(host, "."+d) {
			return false
		}
	}
	return true
}
