package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandsync/pkg/cmd"
)

// toApplicationCommand renders a definition in the shape the REST API takes.
func toApplicationCommand(def *cmd.Definition) *discordgo.ApplicationCommand {
	ac := &discordgo.ApplicationCommand{
		Type:                     discordgo.ChatApplicationCommand,
		Name:                     def.Name,
		Description:              def.Description,
		DefaultMemberPermissions: def.DefaultMemberPermissions,
		DMPermission:             def.DMPermission,
		Options:                  toOptions(def.Options),
	}
	if len(def.NameLocalizations) > 0 {
		m := toLocales(def.NameLocalizations)
		ac.NameLocalizations = &m
	}
	if len(def.DescriptionLocalizations) > 0 {
		m := toLocales(def.DescriptionLocalizations)
		ac.DescriptionLocalizations = &m
	}
	return ac
}

func toOptions(opts []cmd.Option) []*discordgo.ApplicationCommandOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]*discordgo.ApplicationCommandOption, 0, len(opts))
	for _, o := range opts {
		opt := &discordgo.ApplicationCommandOption{
			Type:                     discordgo.ApplicationCommandOptionType(o.Type),
			Name:                     o.Name,
			Description:              o.Description,
			Autocomplete:             o.Autocomplete,
			Options:                  toOptions(o.Options),
			NameLocalizations:        toLocales(o.NameLocalizations),
			DescriptionLocalizations: toLocales(o.DescriptionLocalizations),
		}
		if o.Required != nil {
			opt.Required = *o.Required
		}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:              c.Name,
				Value:             c.Value,
				NameLocalizations: toLocales(c.NameLocalizations),
			})
		}
		out = append(out, opt)
	}
	return out
}

// fromApplicationCommand is the inverse of toApplicationCommand. The API
// always states "required", so remote options carry a non-nil Required.
func fromApplicationCommand(ac *discordgo.ApplicationCommand) cmd.Definition {
	def := cmd.Definition{
		Name:                     ac.Name,
		Description:              ac.Description,
		DefaultMemberPermissions: ac.DefaultMemberPermissions,
		DMPermission:             ac.DMPermission,
		Options:                  fromOptions(ac.Options),
	}
	if ac.NameLocalizations != nil {
		def.NameLocalizations = fromLocales(*ac.NameLocalizations)
	}
	if ac.DescriptionLocalizations != nil {
		def.DescriptionLocalizations = fromLocales(*ac.DescriptionLocalizations)
	}
	return def
}

func fromOptions(opts []*discordgo.ApplicationCommandOption) []cmd.Option {
	if len(opts) == 0 {
		return nil
	}
	out := make([]cmd.Option, 0, len(opts))
	for _, o := range opts {
		if o == nil {
			continue
		}
		opt := cmd.Option{
			Type:                     cmd.OptionType(o.Type),
			Name:                     o.Name,
			Description:              o.Description,
			Required:                 cmd.Bool(o.Required),
			Autocomplete:             o.Autocomplete,
			Options:                  fromOptions(o.Options),
			NameLocalizations:        fromLocales(o.NameLocalizations),
			DescriptionLocalizations: fromLocales(o.DescriptionLocalizations),
		}
		for _, c := range o.Choices {
			if c == nil {
				continue
			}
			opt.Choices = append(opt.Choices, cmd.Choice{
				Name:              c.Name,
				Value:             c.Value,
				NameLocalizations: fromLocales(c.NameLocalizations),
			})
		}
		out = append(out, opt)
	}
	return out
}

func toLocales(m map[string]string) map[discordgo.Locale]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[discordgo.Locale]string, len(m))
	for k, v := range m {
		out[discordgo.Locale(k)] = v
	}
	return out
}

func fromLocales(m map[discordgo.Locale]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}
