// Package config loads env-tagged structs with caarlos0/env, optionally
// seeded from dotenv files via godotenv.
//
// Each component owns its Config struct (httpserver.Config, redis.Config,
// logger.Config) and the binary embeds them:
//
//	type Config struct {
//		HTTP  httpserver.Config
//		Redis redis.Config
//	}
//
//	cfg := config.MustLoad[Config]()
package config
