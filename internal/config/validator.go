package config

import (
	"errors"
	"fmt"

	"github.com/weisyn/securemsg/internal/config/log"
	"github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidateAppConfig 校验用户配置中出现的字段
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}

	var errs []error

	if appConfig.Log != nil {
		logCfg := log.New(appConfig.Log)
		if _, ok := logCfg.GetOptions().LevelMap[logCfg.GetLevel()]; !ok {
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("未知日志级别 %q", logCfg.GetLevel()),
			})
		}
	}

	if appConfig.SecureMessage != nil {
		if err := securemsg.New(appConfig.SecureMessage).Validate(); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "secure_message",
				Message: err.Error(),
			})
		}
	}

	return errors.Join(errs...)
}
