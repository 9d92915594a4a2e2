package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagUnsetLiteral           = "auto"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// optionalBoolean is a boolean flag that remembers whether it was given at all,
// so an absent flag can fall back to configuration.
type optionalBoolean struct {
	value   *bool
	flagKey string
}

func (flagValue *optionalBoolean) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, flagValue.flagKey, booleanFlagAcceptedValuesListing)
	}
	flagValue.value = &parsed
	return nil
}

func (flagValue *optionalBoolean) String() string {
	if flagValue == nil || flagValue.value == nil {
		return booleanFlagUnsetLiteral
	}
	return strconv.FormatBool(*flagValue.value)
}

func (flagValue *optionalBoolean) Type() string {
	return booleanFlagTypeName
}

// resolve returns the flag value when given, the configured value when set, and fallback otherwise.
func (flagValue *optionalBoolean) resolve(configured *bool, fallback bool) bool {
	if flagValue.value != nil {
		return *flagValue.value
	}
	if configured != nil {
		return *configured
	}
	return fallback
}

func registerOptionalBooleanFlag(flagSet *pflag.FlagSet, target *optionalBoolean, name string, usage string) {
	target.flagKey = name
	flagSet.Var(target, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = booleanFlagUnsetLiteral
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag value" into "--flag=value" for
// optional boolean flags followed by a boolean literal, so the literal is not taken as
// the positional path.
func normalizeBooleanFlagArguments(flagSet *pflag.FlagSet, arguments []string) []string {
	booleanFlags := map[string]struct{}{}
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if _, optional := flag.Value.(*optionalBoolean); optional {
			booleanFlags[flag.Name] = struct{}{}
		}
	})
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(currentArgument, "--")
			literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
			_, isBooleanFlag := booleanFlags[flagName]
			_, isLiteral := booleanFlagLiterals[literal]
			if isBooleanFlag && isLiteral {
				normalized = append(normalized, currentArgument+"="+arguments[index+1])
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}
