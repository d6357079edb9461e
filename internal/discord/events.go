package discord

import (
	"strings"
	"unicode"
)

// gatewayEvents are the dispatch event names the router accepts.
var gatewayEvents = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"READY", "RESUMED",
		"APPLICATION_COMMAND_PERMISSIONS_UPDATE",
		"AUTO_MODERATION_ACTION_EXECUTION",
		"CHANNEL_CREATE", "CHANNEL_UPDATE", "CHANNEL_DELETE", "CHANNEL_PINS_UPDATE",
		"THREAD_CREATE", "THREAD_UPDATE", "THREAD_DELETE", "THREAD_LIST_SYNC",
		"THREAD_MEMBER_UPDATE", "THREAD_MEMBERS_UPDATE",
		"GUILD_CREATE", "GUILD_UPDATE", "GUILD_DELETE",
		"GUILD_AUDIT_LOG_ENTRY_CREATE",
		"GUILD_BAN_ADD", "GUILD_BAN_REMOVE",
		"GUILD_EMOJIS_UPDATE", "GUILD_STICKERS_UPDATE", "GUILD_INTEGRATIONS_UPDATE",
		"GUILD_MEMBER_ADD", "GUILD_MEMBER_REMOVE", "GUILD_MEMBER_UPDATE", "GUILD_MEMBERS_CHUNK",
		"GUILD_ROLE_CREATE", "GUILD_ROLE_UPDATE", "GUILD_ROLE_DELETE",
		"GUILD_SCHEDULED_EVENT_CREATE", "GUILD_SCHEDULED_EVENT_UPDATE", "GUILD_SCHEDULED_EVENT_DELETE",
		"GUILD_SCHEDULED_EVENT_USER_ADD", "GUILD_SCHEDULED_EVENT_USER_REMOVE",
		"INTEGRATION_CREATE", "INTEGRATION_UPDATE", "INTEGRATION_DELETE",
		"INTERACTION_CREATE",
		"INVITE_CREATE", "INVITE_DELETE",
		"MESSAGE_CREATE", "MESSAGE_UPDATE", "MESSAGE_DELETE", "MESSAGE_DELETE_BULK",
		"MESSAGE_REACTION_ADD", "MESSAGE_REACTION_REMOVE",
		"MESSAGE_REACTION_REMOVE_ALL", "MESSAGE_REACTION_REMOVE_EMOJI",
		"PRESENCE_UPDATE",
		"STAGE_INSTANCE_CREATE", "STAGE_INSTANCE_UPDATE", "STAGE_INSTANCE_DELETE",
		"TYPING_START", "USER_UPDATE",
		"VOICE_STATE_UPDATE", "VOICE_SERVER_UPDATE",
		"WEBHOOKS_UPDATE",
	} {
		gatewayEvents[name] = struct{}{}
	}
}

// KnownEvent reports whether name (in any accepted spelling) is a gateway
// dispatch event.
func KnownEvent(name string) bool {
	_, ok := gatewayEvents[EventName(name)]
	return ok
}

// EventName normalises an event name to the gateway spelling, so
// "messageCreate", "message_create" and "MESSAGE_CREATE" are the same event.
func EventName(name string) string {
	name = strings.TrimSpace(name)
	if strings.ContainsRune(name, '_') || strings.ToUpper(name) == name {
		return strings.ToUpper(name)
	}

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
