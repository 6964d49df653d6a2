package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

func GetIntEnv(envVarName string, defaultValue int) int {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(envValue)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid. '%s' is not an integer", envVarName, envValue))
	}
	return intValue
}

func GetFloatEnv(envVarName string, defaultValue float64) float64 {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(envValue, 64)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid. '%s' is not a number", envVarName, envValue))
	}
	return floatValue
}

func GetRequiredStringEnv(envVar string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	return envValue
}

func GetStringEnv(envVar string, defaultValue string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	return envValue
}

func GetBoolEnv(envVar string, defaultValue bool) bool {
	stringEnvValue := GetStringEnv(envVar, "")
	if stringEnvValue == "" {
		return defaultValue
	}
	envValue, err := strconv.ParseBool(stringEnvValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: '%s' cannot be converted to bool", envVar, err)
	}
	return envValue
}
