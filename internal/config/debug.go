package config

import "os"

func IsDebug() bool {
	return os.Getenv("DESK_DEBUG") == "1"
}
