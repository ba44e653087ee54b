// Package config loads application configuration from a YAML file, a .env
// file and the process environment.
//
// Viper reads config.yml and the environment; godotenv loads the .env file.
// Both files are searched for under cmd/<service>/, config/<service>/,
// config/ and the working directory unless given explicitly.
//
// # Usage
//
//	cfg := defaultConfig()
//	err := config.Load("seqdemo", &cfg, config.WithConfigFile("config.yml"))
//
// Load fills cfg, then calls ApplyDefaults and Validate when cfg has them.
//
// # Environment
//
// Every leaf key of the config struct can be overridden by an environment
// variable named after it with the SEQKIT_ prefix: SEQKIT_POOL_MIN_SEGMENT_LEN
// sets pool.min_segment_len and SEQKIT_LOGGING_LEVEL sets logging.level.
package config
