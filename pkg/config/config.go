// Package config는 애플리케이션 설정을 관리하는 패키지입니다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 인터페이스는 설정 값에 액세스하기 위한 메서드를 정의합니다.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	// Unmarshal은 전체 설정을 mapstructure 태그가 있는 구조체로 디코딩합니다.
	Unmarshal(out interface{}) error
}

type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *viperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *viperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *viperConfig) Unmarshal(out interface{}) error {
	if err := c.v.Unmarshal(out); err != nil {
		return fmt.Errorf("설정 디코딩 실패: %w", err)
	}
	return nil
}

// 설정 디렉토리 경로
const configDir = "configs"

// Load는 지정된 서비스 이름에 해당하는 설정 파일을 로드합니다.
//
// 탐색 순서: $CONFIG_PATH/{service}.yaml, configs/{APP_ENV}/{service}.yaml, configs/example/{service}.yaml
// 환경 변수는 {SERVICE}_ 접두사를 가지며 키의 "."은 "_"로 치환됩니다 (예: REFERRAL_DATABASE_HOST).
func Load(serviceName string, defaults map[string]interface{}) (Config, error) {
	v := viper.New()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 기본값은 환경 변수 바인딩에도 필요합니다 (Unmarshal 시 AutomaticEnv는 알려진 키만 조회)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)
	v.AddConfigPath(filepath.Join(configDir, "example"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("설정 파일 로드 실패: %w", err)
		}
		// 설정 파일이 없으면 기본값과 환경 변수만 사용합니다
	}

	return &viperConfig{v: v}, nil
}
