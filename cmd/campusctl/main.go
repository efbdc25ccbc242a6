package main

import (
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Fatal().Err(err).Msg("Command failed")
	}
}
