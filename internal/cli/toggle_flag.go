package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName              = "toggle"
	toggleFlagTrueLiteral           = "true"
	toggleFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
	toggleFlagInvalidValueLabel     = "invalid boolean value"
	longFlagPrefix                  = "--"
	shortFlagPrefix                 = "-"
	excludeNameSeparator            = ","
	flagValueSeparator              = "="
)

var toggleFlagLiterals = map[string]bool{
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

// toggleFlagValue is a boolean flag that also accepts a separate literal,
// so "--clipboard no" and "--clipboard=off" both disable a configured default.
type toggleFlagValue struct {
	target  *bool
	flagKey string
}

func (value *toggleFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagTrueLiteral
	}
	parsed, ok := toggleFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", toggleFlagInvalidValueLabel, input, value.flagKey, toggleFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return toggleFlagTrueLiteral
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag adds a toggle flag. Callers use flagSet.Changed(name) to
// decide whether the flag overrides a configured value.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, flagKey: name}, name, usage)
	lookup := flagSet.Lookup(name)
	lookup.DefValue = strconv.FormatBool(defaultValue)
	lookup.NoOptDefVal = toggleFlagTrueLiteral
}

// normalizeToggleFlagArguments joins "--flag literal" pairs into "--flag=literal" for
// toggle flags, since pflag would otherwise treat the literal as a positional argument.
func normalizeToggleFlagArguments(command *cobra.Command, arguments []string) []string {
	toggleFlags := map[string]struct{}{}
	collectToggleFlagNames(command, toggleFlags)
	if len(toggleFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == longFlagPrefix {
			return append(normalized, arguments[index:]...)
		}
		flagName := strings.TrimPrefix(currentArgument, longFlagPrefix)
		_, isToggle := toggleFlags[flagName]
		if strings.HasPrefix(currentArgument, longFlagPrefix) && !strings.Contains(currentArgument, flagValueSeparator) && isToggle && index+1 < len(arguments) {
			literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
			if _, valid := toggleFlagLiterals[literal]; valid {
				normalized = append(normalized, longFlagPrefix+flagName+flagValueSeparator+arguments[index+1])
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectToggleFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flag *pflag.Flag) {
		if flag.Value.Type() == toggleFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectToggleFlagNames(child, target)
	}
}
