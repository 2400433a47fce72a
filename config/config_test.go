package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfig_Defaults(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("HTTP_CLIENT_TIMEOUT_SECONDS", "")
	t.Setenv("CART_STORAGE_DRIVER", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	conf := CreateNewConfig()

	assert.Equal(t, "Asia/Jakarta", conf.ServiceConfig.Timezone)
	assert.Equal(t, 0, conf.RemoteAPIConfig.TimeoutSeconds)
	assert.Equal(t, "memory", conf.StorageConfig.Driver)
	assert.Equal(t, []string{"*"}, conf.ServiceConfig.CORSAllowOrigins)
}

func TestCreateNewConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_CLIENT_TIMEOUT_SECONDS", "15")
	t.Setenv("BROKER_PARTITION", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://shop.example, https://admin.example")
	t.Setenv("CART_STORAGE_DRIVER", "redis")

	conf := CreateNewConfig()

	assert.Equal(t, 15, conf.RemoteAPIConfig.TimeoutSeconds)
	assert.Equal(t, 0, conf.KafkaConfig.BrokerPartition)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, conf.ServiceConfig.CORSAllowOrigins)
	assert.Equal(t, "redis", conf.StorageConfig.Driver)
}
