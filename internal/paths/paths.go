package paths

import (
	"os"
	"path/filepath"
)

const (
	appDirName   = "taskdeck"
	configFile   = "config.json"
	tokenFile    = "token.json"
	credsFile    = "credentials.json"
	snapshotFile = "snapshot.json"
	logFile      = "taskdeck.log"
)

func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		dotConfig := filepath.Join(home, ".config", appDirName)
		if _, err := os.Stat(dotConfig); err == nil {
			return dotConfig, nil
		}
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appDirName), nil
}

// CacheDir holds data that can be rebuilt: the lists snapshot and the log.
func CacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func inCacheDir(name string) (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func ConfigPath() (string, error) { return inConfigDir(configFile) }

func TokenPath() (string, error) { return inConfigDir(tokenFile) }

func CredentialsPath() (string, error) { return inConfigDir(credsFile) }

func SnapshotPath() (string, error) { return inCacheDir(snapshotFile) }

func LogPath() (string, error) { return inCacheDir(logFile) }
