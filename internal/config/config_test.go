package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	c := Default(4)
	if err := c.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestDefaultClampsNonPositiveCPUCount(t *testing.T) {
	c := Default(0)
	if c.ShardCount != 1 {
		t.Errorf("expected ShardCount to clamp to 1, got %d", c.ShardCount)
	}
}

func TestValidateRejectsTooManyShards(t *testing.T) {
	c := Default(4)
	c.ShardCount = 257
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for ShardCount > 256")
	}
}

func TestValidateRejectsZeroShards(t *testing.T) {
	c := Default(4)
	c.ShardCount = 0
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for ShardCount < 1")
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	c := Default(4)
	c.LogLevel = "verbose"
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for unrecognized log level")
	}
}
