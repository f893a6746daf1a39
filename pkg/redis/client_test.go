package redis

import (
	"testing"

	"github.com/stockyardhq/warehouse-backend/pkg/config"
)

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestOptionsFromConfigUsesAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{Address: "cache.internal:6379", Password: "s3kret", DB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache.internal:6379" || opts.Password != "s3kret" || opts.DB != 1 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestReportKeyNamespacing(t *testing.T) {
	c := &Client{}
	if got := c.ReportKey("valuation"); got != "sy:report:valuation" {
		t.Fatalf("unexpected key %q", got)
	}
}
