package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OptionType is the platform's numeric option kind (3 = string, 4 = integer, ...).
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
	OptionAttachment      OptionType = 11
)

var optionTypeNames = map[string]OptionType{
	"subcommand":       OptionSubCommand,
	"subcommand_group": OptionSubCommandGroup,
	"string":           OptionString,
	"integer":          OptionInteger,
	"boolean":          OptionBoolean,
	"user":             OptionUser,
	"channel":          OptionChannel,
	"role":             OptionRole,
	"mentionable":      OptionMentionable,
	"number":           OptionNumber,
	"attachment":       OptionAttachment,
}

// ParseOptionType accepts either the numeric form or a lowercase name.
func ParseOptionType(s string) (OptionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := optionTypeNames[s]; ok {
		return t, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n > 0 {
		return OptionType(n), nil
	}
	return 0, fmt.Errorf("unknown option type %q", s)
}

func (t *OptionType) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = OptionType(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("option type must be a number or a name: %w", err)
	}
	parsed, err := ParseOptionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *OptionType) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseOptionType(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Choice is a fixed value offered for an option.
type Choice struct {
	Name              string            `json:"name" yaml:"name"`
	Value             any               `json:"value" yaml:"value"`
	NameLocalizations map[string]string `json:"name_localizations,omitempty" yaml:"name_localizations,omitempty"`
}

// Option describes one command argument. Required is a pointer because
// "not stated" and "false" are different things when diffing.
type Option struct {
	Type                     OptionType        `json:"type" yaml:"type"`
	Name                     string            `json:"name" yaml:"name"`
	Description              string            `json:"description" yaml:"description"`
	Required                 *bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Autocomplete             bool              `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	Choices                  []Choice          `json:"choices,omitempty" yaml:"choices,omitempty"`
	Options                  []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty" yaml:"name_localizations,omitempty"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty" yaml:"description_localizations,omitempty"`
}

// Definition is the registrable shape of a command.
type Definition struct {
	Name                     string            `json:"name" yaml:"name"`
	Description              string            `json:"description" yaml:"description"`
	Options                  []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty" yaml:"name_localizations,omitempty"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty" yaml:"description_localizations,omitempty"`
	DefaultMemberPermissions *int64            `json:"default_member_permissions,omitempty" yaml:"default_member_permissions,omitempty"`
	DMPermission             *bool             `json:"dm_permission,omitempty" yaml:"dm_permission,omitempty"`

	// Deleted marks a command that must not exist remotely.
	Deleted bool `json:"deleted,omitempty" yaml:"deleted,omitempty"`

	// Metadata carries adapter or gate specific flags (e.g. "devOnly").
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Flag reports whether Metadata[key] is boolean true.
func (d *Definition) Flag(key string) bool {
	v, ok := d.Metadata[key].(bool)
	return ok && v
}

// Bool is a helper for the optional boolean fields.
func Bool(v bool) *bool { return &v }
