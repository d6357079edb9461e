// Package docs renders the command reference from loaded definitions.
package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"github.com/keshon/commandsync/pkg/cmd"
)

// DefaultTemplate is used when no template file is given.
const DefaultTemplate = "# Commands\n\n{{.CommandSections}}"

// Sections renders one Markdown section per command group. Deleted and
// developer-only commands are left out.
func Sections(commands []*cmd.Command) string {
	groups := make(map[string][]*cmd.Command)
	for _, c := range commands {
		if c.Deleted || c.Flag("devOnly") {
			continue
		}
		g, _ := c.Metadata["group"].(string)
		if g == "" {
			g = "general"
		}
		groups[g] = append(groups[g], c)
	}

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for i, g := range names {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "### %s\n\n", g)

		list := groups[g]
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		for _, c := range list {
			fmt.Fprintf(&buf, "- **/%s** — %s\n", c.Name, c.Description)
			for _, o := range c.Options {
				req := ""
				if o.Required != nil && *o.Required {
					req = ", required"
				}
				fmt.Fprintf(&buf, "  - `%s` (%s%s): %s\n", o.Name, optionTypeName(o.Type), req, o.Description)
			}
		}
	}
	return buf.String()
}

// Render executes tmpl with the command sections as .CommandSections.
func Render(w io.Writer, tmpl string, commands []*cmd.Command) error {
	t, err := template.New("readme").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	data := struct {
		CommandSections string
	}{
		CommandSections: Sections(commands),
	}
	return t.Execute(w, data)
}

// LoadTemplate reads the template at path, or returns DefaultTemplate when
// path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile renders the template at tmplPath into outPath.
func WriteFile(tmplPath, outPath string, commands []*cmd.Command) error {
	tmpl, err := LoadTemplate(tmplPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Render(&buf, tmpl, commands); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0644)
}

var optionTypeNames = map[cmd.OptionType]string{
	cmd.OptionSubCommand:      "subcommand",
	cmd.OptionSubCommandGroup: "subcommand group",
	cmd.OptionString:          "string",
	cmd.OptionInteger:         "integer",
	cmd.OptionBoolean:         "boolean",
	cmd.OptionUser:            "user",
	cmd.OptionChannel:         "channel",
	cmd.OptionRole:            "role",
	cmd.OptionMentionable:     "mentionable",
	cmd.OptionNumber:          "number",
	cmd.OptionAttachment:      "attachment",
}

func optionTypeName(t cmd.OptionType) string {
	if n, ok := optionTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("type %d", int(t))
}
