package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

var ConfigGlobal = DefaultConfig()

type Config struct {
	// account
	AccessKeyId     string `yaml:"accessKeyId"`
	AccessKeySecret string `yaml:"accessKeySecret"`
	Region          string `yaml:"region"`

	// oss
	OssEndpoint string `yaml:"ossEndpoint"`

	// ots
	OtsEndpoint     string `yaml:"otsEndpoint"`
	OtsInstanceName string `yaml:"otsInstanceName"`
	OtsTimeToAlive  int    `yaml:"otsTimeToAlive"` // data expired time/second
	OtsMaxVersion   int    `yaml:"otsMaxVersion"`  // data column max version nums

	// history db
	DbSqlite string `yaml:"dbSqlite"`
}

func DefaultConfig() *Config {
	return &Config{
		OssEndpoint:     "oss-cn-beijing.aliyuncs.com",
		OtsTimeToAlive:  -1,
		OtsMaxVersion:   1,
		DbSqlite:        "./packager.sqlite3",
		AccessKeyId:     os.Getenv(ACCESS_KEY_ID),
		AccessKeySecret: os.Getenv(ACCESS_KEY_SECRET),
	}
}

// InitConfig load config from yaml file, env vars override the file values.
// A missing file is not an error, the defaults and env are enough for the
// s3 backend which resolves credentials through the aws sdk chain.
func InitConfig(fn string) error {
	ConfigGlobal = DefaultConfig()
	if fn != "" {
		data, err := os.ReadFile(fn)
		if err != nil {
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			if err := yaml.Unmarshal(data, ConfigGlobal); err != nil {
				return err
			}
		}
	}
	if v := os.Getenv(ACCESS_KEY_ID); v != "" {
		ConfigGlobal.AccessKeyId = v
	}
	if v := os.Getenv(ACCESS_KEY_SECRET); v != "" {
		ConfigGlobal.AccessKeySecret = v
	}
	if v := os.Getenv(OSS_ENDPOINT); v != "" {
		ConfigGlobal.OssEndpoint = v
	}
	if v := os.Getenv(OTS_ENDPOINT); v != "" {
		ConfigGlobal.OtsEndpoint = v
	}
	if v := os.Getenv(OTS_INSTANCE_NAME); v != "" {
		ConfigGlobal.OtsInstanceName = v
	}
	return nil
}
