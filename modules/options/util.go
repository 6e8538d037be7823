package options

import (
	"strconv"
	"strings"

	m365errors "github.com/praetorian-inc/m365/pkg/errors"
	"github.com/praetorian-inc/m365/pkg/types"
)

func WithRequired(option types.Option, required bool) *types.Option {
	option.Required = required
	return &option
}

func WithDefaultValue(option types.Option, value string) *types.Option {
	option.Value = value
	return &option
}

func WithDescription(option types.Option, description string) *types.Option {
	option.Description = description
	return &option
}

func WithValueList(option types.Option, values []string) *types.Option {
	option.ValueList = values
	return &option
}

func GetOptionByName(name string, options []*types.Option) *types.Option {
	return types.GetOptionByName(name, options)
}

// Value returns the value of the named option, or "" when it was not declared.
func Value(name string, options []*types.Option) string {
	if opt := GetOptionByName(name, options); opt != nil {
		return opt.Value
	}
	return ""
}

// BoolValue parses the named option as a bool. Undeclared or unparsable
// options read as false.
func BoolValue(name string, options []*types.Option) bool {
	b, err := strconv.ParseBool(Value(name, options))
	return err == nil && b
}

// IntValue parses the named option as an int, falling back to def.
func IntValue(name string, options []*types.Option, def int) int {
	i, err := strconv.Atoi(Value(name, options))
	if err != nil {
		return def
	}
	return i
}

func CreateDeepCopyOfOptions(original []*types.Option) []*types.Option {
	copiedOptions := make([]*types.Option, len(original))

	for i, option := range original {
		newOption := *option
		copiedOptions[i] = &newOption
	}

	return copiedOptions
}

// ValidateOption checks the value supplied for opt among options against the
// declared definition: required, format, allowed values and type.
func ValidateOption(opt types.Option, options []*types.Option) error {
	for _, option := range options {
		if option.Name != opt.Name {
			continue
		}

		// Not required and empty
		if !opt.Required && option.Value == "" {
			return nil
		}

		// Required and empty
		if opt.Required && option.Value == "" {
			return m365errors.NewValidationError("%s is required", option.Name)
		}

		if opt.ValueFormat != nil && !opt.ValueFormat.MatchString(option.Value) {
			if opt.ValueFormat == GUIDFormat {
				return m365errors.NewValidationError("%s is not a valid GUID", option.Value)
			}
			return m365errors.NewValidationError("%s is an invalid format", option.Name)
		}

		if opt.ValueList != nil {
			for _, value := range opt.ValueList {
				if strings.EqualFold(value, option.Value) {
					return nil
				}
			}
			return m365errors.NewValidationError("%s is not a valid option. Valid options are: %s", option.Name, strings.Join(opt.ValueList, ", "))
		}

		// Check if the option value is of the correct type when non-string
		switch opt.Type {
		case types.Bool:
			if _, err := strconv.ParseBool(option.Value); err != nil {
				return m365errors.NewValidationError("%s is not a valid boolean", option.Value)
			}
		case types.Int:
			if _, err := strconv.Atoi(option.Value); err != nil {
				return m365errors.NewValidationError("%s is not a number", option.Value)
			}
		}
		return nil
	}

	if opt.Required {
		return m365errors.NewValidationError("%s is required", opt.Name)
	}
	return nil
}

// ValidateOptions validates every declared definition against the values
// parsed for the command.
func ValidateOptions(opts []*types.Option, definitions []*types.Option) error {
	for _, def := range definitions {
		if err := ValidateOption(*def, opts); err != nil {
			return err
		}
	}
	return nil
}

// CountSet returns how many of the named options carry a value.
func CountSet(options []*types.Option, names ...string) int {
	n := 0
	for _, name := range names {
		if GetOptionByName(name, options).IsSet() {
			n++
		}
	}
	return n
}

// ExactlyOneOf fails unless exactly one of the named options is set. Zero and
// several selectors share the same message.
func ExactlyOneOf(options []*types.Option, names ...string) error {
	if CountSet(options, names...) == 1 {
		return nil
	}
	return m365errors.NewValidationError("Specify either %s", joinChoices(names))
}

func joinChoices(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
