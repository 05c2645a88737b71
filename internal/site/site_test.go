package site

import (
	"strings"
	"testing"
)

func validConfig(name string) Config {
	return Config{
		URL:             "https://example.edu.tw/news",
		DomainName:      name,
		ParentSelector:  "div.list",
		ArticleSelector: "article",
		TitleSelector:   "h2 a",
		DateSelector:    "time",
		MaxItems:        10,
	}
}

func TestDefault(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	wantOrder := []string{"NFU_AUTO", "NFU_OSA", "NFU_GAW", "NFU_ACADEMIC"}
	sites := reg.Sites()
	if len(sites) != len(wantOrder) {
		t.Fatalf("Default() has %d sites, want %d", len(sites), len(wantOrder))
	}
	for i, name := range wantOrder {
		if sites[i].DomainName != name {
			t.Errorf("site[%d] = %q, want %q", i, sites[i].DomainName, name)
		}
		if sites[i].MaxItems != 10 {
			t.Errorf("site[%d].MaxItems = %d, want 10", i, sites[i].MaxItems)
		}
	}

	osa, ok := reg.Lookup("NFU_OSA")
	if !ok {
		t.Fatal("Lookup(NFU_OSA) not found")
	}
	if osa.ArticleSelector != `tbody tr[class*="cat-list-row"]` {
		t.Errorf("NFU_OSA article selector = %q", osa.ArticleSelector)
	}
	if osa.DateSelector != "td:nth-child(2)" {
		t.Errorf("NFU_OSA date selector = %q", osa.DateSelector)
	}

	for _, c := range sites {
		if reg.VerifyTLS(c.URL) {
			t.Errorf("VerifyTLS(%q) = true, want false for bundled site", c.URL)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero max items is allowed", func(c *Config) { c.MaxItems = 0 }, ""},
		{"missing domain", func(c *Config) { c.DomainName = " " }, "domain_name is required"},
		{"path in domain", func(c *Config) { c.DomainName = "../x" }, "path separators"},
		{"bad scheme", func(c *Config) { c.URL = "ftp://example.com" }, "http or https"},
		{"empty title selector", func(c *Config) { c.TitleSelector = "" }, "title_selector is required"},
		{"empty parent selector", func(c *Config) { c.ParentSelector = "" }, "parent_selector is required"},
		{"unparseable selector", func(c *Config) { c.DateSelector = "td:nth-child(" }, "invalid date_selector"},
		{"negative max items", func(c *Config) { c.MaxItems = -1 }, "max_items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig("TEST")
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRegistry_DuplicateDomain(t *testing.T) {
	_, err := NewRegistry([]Config{validConfig("A"), validConfig("A")}, nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("NewRegistry() error = %v, want duplicate error", err)
	}
}

func TestNewRegistry_PrefixCollision(t *testing.T) {
	_, err := NewRegistry([]Config{validConfig("NFU"), validConfig("NFU_OSA")}, nil)
	if err == nil || !strings.Contains(err.Error(), "prefix") {
		t.Errorf("NewRegistry() error = %v, want prefix error", err)
	}
}

func TestRegistry_IsImmutable(t *testing.T) {
	input := []Config{validConfig("A"), validConfig("B")}
	reg, err := NewRegistry(input, nil)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	input[0].DomainName = "CHANGED"
	got := reg.Sites()
	got[1].DomainName = "ALSO_CHANGED"

	again := reg.Sites()
	if again[0].DomainName != "A" || again[1].DomainName != "B" {
		t.Errorf("registry mutated: %+v", again)
	}
}

func TestRegistry_Filter(t *testing.T) {
	reg, err := NewRegistry([]Config{validConfig("A"), validConfig("B"), validConfig("C")}, nil)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	filtered, err := reg.Filter([]string{"C", "A"})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	sites := filtered.Sites()
	if len(sites) != 2 || sites[0].DomainName != "A" || sites[1].DomainName != "C" {
		t.Errorf("Filter() = %+v, want [A C] in registry order", sites)
	}

	if _, err := reg.Filter([]string{"Z"}); err == nil {
		t.Error("Filter() with unknown site expected error")
	}

	same, err := reg.Filter(nil)
	if err != nil || same.Len() != 3 {
		t.Errorf("Filter(nil) = %d sites, err %v; want 3", same.Len(), err)
	}
}

func TestRegistry_VerifyTLS(t *testing.T) {
	reg, err := NewRegistry(nil, []string{"Internal.EDU.tw"})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://internal.edu.tw/", false},
		{"https://news.internal.edu.tw/list", false},
		{"https://internal.edu.tw:8443/x", false},
		{"https://example.com/", true},
		{"https://notinternal.edu.tw/", true},
		{"https://example.com/?next=internal.edu.tw", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := reg.VerifyTLS(tt.url); got != tt.want {
				t.Errorf("VerifyTLS(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("sites: [")); err == nil {
		t.Error("Parse() with malformed YAML expected error")
	}
}

func TestConfig_Host(t *testing.T) {
	c := validConfig("A")
	c.URL = "https://GAW.nfu.edu.tw/category/x/"
	if got := c.Host(); got != "gaw.nfu.edu.tw" {
		t.Errorf("Host() = %q, want gaw.nfu.edu.tw", got)
	}
}
