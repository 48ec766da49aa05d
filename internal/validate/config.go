package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iiroan/itermprofile/internal/config"
)

// Config validates the itermprofile configuration file.
func Config(rootDir, configPath string) Result {
	result := Result{}

	path := configPath
	if path == "" {
		path = config.GetConfigPath(rootDir)
	}

	if _, err := os.Stat(path); err == nil {
		loadedCfg, err := config.Load(path)
		if err != nil {
			result.AddError(fmt.Sprintf("Config: %v", err))
			result.AddItem(StatusError, filepath.Base(path), err.Error())
			return result
		}
		if err := loadedCfg.Validate(); err != nil {
			result.AddError(fmt.Sprintf("Config: %v", err))
			result.AddItem(StatusError, filepath.Base(path), err.Error())
			return result
		}
		result.AddItem(StatusSuccess, filepath.Base(path), "")
		return result
	}

	result.AddPending(config.FileName + " not found, using defaults")
	result.AddItem(StatusPending, config.FileName, "not found, using defaults")
	return result
}
