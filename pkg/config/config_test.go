package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitConfigMissingFile(t *testing.T) {
	err := InitConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, -1, ConfigGlobal.OtsTimeToAlive)
	assert.Equal(t, "oss-cn-beijing.aliyuncs.com", ConfigGlobal.OssEndpoint)
}

func TestInitConfigFromYaml(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "config.yaml")
	content := "ossEndpoint: oss-cn-shanghai.aliyuncs.com\ndbSqlite: ./history.db\n"
	assert.NoError(t, os.WriteFile(fn, []byte(content), 0644))

	err := InitConfig(fn)
	assert.NoError(t, err)
	assert.Equal(t, "oss-cn-shanghai.aliyuncs.com", ConfigGlobal.OssEndpoint)
	assert.Equal(t, "./history.db", ConfigGlobal.DbSqlite)
}

func TestInitConfigEnvOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(fn, []byte("ossEndpoint: from-file\n"), 0644))

	t.Setenv(OSS_ENDPOINT, "from-env")
	err := InitConfig(fn)
	assert.NoError(t, err)
	assert.Equal(t, "from-env", ConfigGlobal.OssEndpoint)
}
