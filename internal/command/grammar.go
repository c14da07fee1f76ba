// Package command recognizes the moderation command surface: canonical slash
// commands and bare-word commands in either language, plus the report and
// rules aliases. Both surfaces funnel into the same Action set.
package command

import (
	"regexp"
	"strings"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/timespec"
)

// Action is the closed set of moderation verbs. Dispatch over it is an
// exhaustive switch, so adding a verb is a compile-time-checked change.
type Action int

const (
	ActionNone Action = iota
	ActionBan
	ActionUnban
	ActionMute
	ActionUnmute
	ActionKick
	ActionWarn
	ActionUnwarn
	ActionWarns
)

// Verb returns the imperative used in target-validation error messages.
func (a Action) Verb() string {
	switch a {
	case ActionBan:
		return "забанить"
	case ActionUnban:
		return "разбанить"
	case ActionMute:
		return "замутить"
	case ActionUnmute:
		return "размутить"
	case ActionKick:
		return "кикнуть"
	case ActionWarn, ActionUnwarn, ActionWarns:
		return "выдать варн"
	default:
		return "модерировать"
	}
}

// Usage returns the hint shown when no target could be resolved.
func (a Action) Usage() string {
	switch a {
	case ActionBan:
		return "бан @user 1д причина"
	case ActionUnban:
		return "разбан @user"
	case ActionMute:
		return "мут @user 1м причина"
	case ActionUnmute:
		return "размут @user"
	case ActionKick:
		return "кик @user причина"
	case ActionWarn:
		return "варн @user причина"
	case ActionUnwarn:
		return "снятьварн @user"
	case ActionWarns:
		return "варны @user"
	default:
		return "мут @user 1м причина"
	}
}

var wordActions = map[string]Action{
	"ban": ActionBan, "бан": ActionBan,
	"unban": ActionUnban, "разбан": ActionUnban, "анбан": ActionUnban,
	"mute": ActionMute, "мут": ActionMute,
	"unmute": ActionUnmute, "размут": ActionUnmute, "анмут": ActionUnmute,
	"kick": ActionKick, "кик": ActionKick,
	"warn": ActionWarn, "варн": ActionWarn,
	"unwarn": ActionUnwarn, "снятьварн": ActionUnwarn,
	"warns": ActionWarns, "варны": ActionWarns,
}

var (
	bareRe   = regexp.MustCompile(`(?i)^!?(мут|mute|размут|анмут|unmute|бан|ban|разбан|анбан|unban|кик|kick)(?:\s+(.*))?$`)
	warnRe   = regexp.MustCompile(`(?i)^[!/](warn|варн|unwarn|снятьварн|warns|варны)(?:\s+(.*))?$`)
	reportRe = regexp.MustCompile(`(?i)^[!/](admin|админ|report|репорт)(?:\s+(.*))?$`)
	rulesRe  = regexp.MustCompile(`(?i)^!(правила|rules)$`)
)

// Parse recognizes a moderation command at the start of text. botUsername
// strips the /cmd@bot suffix on slash commands.
func Parse(text, botUsername string) (Action, string, bool) {
	if text == "" {
		return ActionNone, "", false
	}

	if strings.HasPrefix(text, "/") {
		head, rest, _ := strings.Cut(text[1:], " ")
		head = strings.ToLower(head)
		if at := strings.IndexByte(head, '@'); at >= 0 {
			if !strings.EqualFold(head[at+1:], botUsername) {
				return ActionNone, "", false
			}
			head = head[:at]
		}
		if action, ok := wordActions[head]; ok {
			return action, strings.TrimSpace(rest), true
		}
		return ActionNone, "", false
	}

	if m := bareRe.FindStringSubmatch(text); m != nil {
		return wordActions[strings.ToLower(m[1])], strings.TrimSpace(m[2]), true
	}
	if m := warnRe.FindStringSubmatch(text); m != nil {
		return wordActions[strings.ToLower(m[1])], strings.TrimSpace(m[2]), true
	}
	return ActionNone, "", false
}

// ParseReport matches the report aliases and returns the optional comment.
func ParseReport(text string) (string, bool) {
	m := reportRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// IsRules matches the rules aliases.
func IsRules(text string) bool {
	return rulesRe.MatchString(text)
}

// Args is the parsed tail of a moderation command.
type Args struct {
	TargetArg   string
	Duration    time.Duration
	HasDuration bool
	Reason      string
}

// ParseArgs splits the command tail into target, duration and reason. With a
// reply the whole tail is duration/reason; otherwise the first token names
// the target. The first remaining token that parses as a duration is consumed
// as the duration, everything after it is the reason; when it does not parse,
// the whole remainder is the reason.
func ParseArgs(argsText string, hasReply bool) Args {
	parts := strings.Fields(argsText)
	var out Args

	if !hasReply {
		if len(parts) == 0 {
			return out
		}
		out.TargetArg = parts[0]
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return out
	}

	if d, ok := timespec.Parse(parts[0]); ok {
		out.Duration = d
		out.HasDuration = true
		out.Reason = strings.Join(parts[1:], " ")
	} else {
		out.Reason = strings.Join(parts, " ")
	}
	return out
}
