// Package vars is a registry of configuration values with their names,
// environment variables and validation messages.
package vars

import (
	"fmt"
	"os"

	"github.com/livingaura/aura/config/value"
)

type variable struct {
	value       value.Value
	defVal      string   // Default value in string representation
	name        string   // Name of the value in the config file, e.g. "log.level"
	envName     string   // Environment variable that overrides the value
	envAltNames []string // Alternative environment variables, in order of precedence
	description string
	required    bool // A non-empty value is required
	disguise    bool // The value is disguised in messages
	merged      bool // The value has been replaced by an environment variable
}

// Variable is the printable form of a registered value.
type Variable struct {
	Value       string
	Name        string
	EnvName     string
	Description string
	Merged      bool
}

type message struct {
	message  string
	variable Variable
	level    string
}

type Variables struct {
	vars []*variable
	logs []message
}

// Register adds a value to the registry. The current value becomes the default.
func (vs *Variables) Register(val value.Value, name, envName string, envAltNames []string, description string, required, disguise bool) {
	vs.vars = append(vs.vars, &variable{
		value:       val,
		defVal:      val.String(),
		name:        name,
		envName:     envName,
		envAltNames: envAltNames,
		description: description,
		required:    required,
		disguise:    disguise,
	})
}

func (vs *Variables) SetDefault(name string) {
	v := vs.findVariable(name)
	if v == nil {
		return
	}

	v.value.Set(v.defVal)
}

func (vs *Variables) Get(name string) (string, error) {
	v := vs.findVariable(name)
	if v == nil {
		return "", fmt.Errorf("variable '%s' not found", name)
	}

	return v.value.String(), nil
}

func (vs *Variables) Set(name, val string) error {
	v := vs.findVariable(name)
	if v == nil {
		return fmt.Errorf("variable '%s' not found", name)
	}

	return v.value.Set(val)
}

// Log adds a message for the variable with the given name. Messages for
// unknown variables are discarded.
func (vs *Variables) Log(level, name string, format string, args ...interface{}) {
	v := vs.findVariable(name)
	if v == nil {
		return
	}

	vs.logs = append(vs.logs, message{
		message:  fmt.Sprintf(format, args...),
		variable: v.export(),
		level:    level,
	})
}

// Merge overrides the values with their environment variables, if set.
func (vs *Variables) Merge() {
	for _, v := range vs.vars {
		envval, ok := vs.lookupEnv(v)
		if !ok {
			continue
		}

		if err := v.value.Set(envval); err != nil {
			vs.Log("error", v.name, "%s", err.Error())
			continue
		}

		v.merged = true
	}
}

func (vs *Variables) lookupEnv(v *variable) (string, bool) {
	if len(v.envName) == 0 {
		return "", false
	}

	if envval, ok := os.LookupEnv(v.envName); ok {
		return envval, true
	}

	for _, envName := range v.envAltNames {
		if envval, ok := os.LookupEnv(envName); ok {
			vs.Log("info", v.name, "using %s, %s is not set", envName, v.envName)
			return envval, true
		}
	}

	return "", false
}

func (vs *Variables) IsMerged(name string) bool {
	v := vs.findVariable(name)
	if v == nil {
		return false
	}

	return v.merged
}

// Validate validates all values and logs an error for each invalid value.
func (vs *Variables) Validate() {
	for _, v := range vs.vars {
		if err := v.value.Validate(); err != nil {
			vs.Log("error", v.name, "%s", err.Error())
		}

		if v.required && v.value.IsEmpty() {
			vs.Log("error", v.name, "a value is required")
		}
	}
}

func (vs *Variables) ResetLogs() {
	vs.logs = nil
}

// Messages calls the logger for each message in the order they have been added.
func (vs *Variables) Messages(logger func(level string, v Variable, message string)) {
	for _, l := range vs.logs {
		logger(l.level, l.variable, l.message)
	}
}

func (vs *Variables) HasErrors() bool {
	for _, l := range vs.logs {
		if l.level == "error" {
			return true
		}
	}

	return false
}

// Overrides returns the names of all values that have been replaced by an
// environment variable.
func (vs *Variables) Overrides() []string {
	overrides := []string{}

	for _, v := range vs.vars {
		if v.merged {
			overrides = append(overrides, v.name)
		}
	}

	return overrides
}

// List returns all registered values in the order of registration.
func (vs *Variables) List() []Variable {
	list := make([]Variable, 0, len(vs.vars))

	for _, v := range vs.vars {
		list = append(list, v.export())
	}

	return list
}

func (vs *Variables) findVariable(name string) *variable {
	for _, v := range vs.vars {
		if v.name == name {
			return v
		}
	}

	return nil
}

func (v *variable) export() Variable {
	x := Variable{
		Value:       v.value.String(),
		Name:        v.name,
		EnvName:     v.envName,
		Description: v.description,
		Merged:      v.merged,
	}

	if v.disguise {
		x.Value = "***"
	}

	return x
}
