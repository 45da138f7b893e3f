package config

import "context"

type configCtxKeyType string

const configCtxKey configCtxKeyType = "config"

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configCtxKey, cfg)
}

func ConfigFromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configCtxKey).(*Config)
	if !ok {
		panic("config not present in context")
	}
	return cfg
}
