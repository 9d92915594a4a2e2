package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/temirov/pathtree/internal/cli"
	"github.com/temirov/pathtree/internal/utils"
)

// main is the entry point for the pathtree command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()

	if environmentError := godotenv.Load(utils.EnvironmentFileName); environmentError != nil && !errors.Is(environmentError, fs.ErrNotExist) {
		loggerInstance.Warn(environmentError.Error())
	}
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
