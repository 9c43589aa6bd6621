package config

import "os"

func IsDebug() bool {
	return os.Getenv("MEETBOT_DEBUG") == "1"
}
