package minio

import "errors"

// Config represents the configuration for the MinIO client
type Config struct {
	// Endpoint is the S3-compatible object storage endpoint
	// Examples: "s3.amazonaws.com", "localhost:9000"
	Endpoint string `mapstructure:"endpoint"`

	// AccessKeyID is the access key for authentication
	AccessKeyID string `mapstructure:"accesskey"`

	// SecretAccessKey is the secret key for authentication
	SecretAccessKey string `mapstructure:"secretkey"`

	// Region is the region of the object storage (optional)
	Region string `mapstructure:"region"`

	// UseSSL determines whether to use HTTPS
	UseSSL bool `mapstructure:"usessl"`

	// Bucket is the bucket holding uploaded content objects
	Bucket string `mapstructure:"bucket"`
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if c.AccessKeyID == "" {
		return errors.New("access key is required")
	}
	if c.SecretAccessKey == "" {
		return errors.New("secret key is required")
	}
	if c.Bucket == "" {
		return errors.New("bucket is required")
	}
	return nil
}
