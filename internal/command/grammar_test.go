package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BareWords(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		action Action
		args   string
	}{
		{"russian mute", "мут @user 10м спам", ActionMute, "@user 10м спам"},
		{"english ban", "ban 123456", ActionBan, "123456"},
		{"bang prefix", "!кик @user", ActionKick, "@user"},
		{"unban alias", "анбан @user", ActionUnban, "@user"},
		{"unmute alias", "размут @user", ActionUnmute, "@user"},
		{"bare no args", "мут", ActionMute, ""},
		{"case insensitive", "МУТ @user", ActionMute, "@user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, args, ok := Parse(tt.text, "modbot")
			require.True(t, ok)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParse_SlashCommands(t *testing.T) {
	action, args, ok := Parse("/ban @user 1д флуд", "modbot")
	require.True(t, ok)
	assert.Equal(t, ActionBan, action)
	assert.Equal(t, "@user 1д флуд", args)

	action, _, ok = Parse("/mute@modbot @user", "modbot")
	require.True(t, ok)
	assert.Equal(t, ActionMute, action)

	_, _, ok = Parse("/mute@otherbot @user", "modbot")
	assert.False(t, ok, "commands addressed to another bot are ignored")

	_, _, ok = Parse("/start", "modbot")
	assert.False(t, ok)
}

func TestParse_WarnFamilyNeedsPrefix(t *testing.T) {
	action, args, ok := Parse("!варн @user оффтоп", "modbot")
	require.True(t, ok)
	assert.Equal(t, ActionWarn, action)
	assert.Equal(t, "@user оффтоп", args)

	action, _, ok = Parse("/снятьварн @user", "modbot")
	require.True(t, ok)
	assert.Equal(t, ActionUnwarn, action)

	action, _, ok = Parse("!warns @user", "modbot")
	require.True(t, ok)
	assert.Equal(t, ActionWarns, action)

	_, _, ok = Parse("варн @user", "modbot")
	assert.False(t, ok, "bare warn words are ordinary text")
}

func TestParse_PlainTextIgnored(t *testing.T) {
	for _, text := range []string{"привет", "мутный тип", "banana", "", "кто тут"} {
		_, _, ok := Parse(text, "modbot")
		assert.False(t, ok, "text %q", text)
	}
}

func TestParseReport(t *testing.T) {
	comment, ok := ParseReport("!репорт реклама в чате")
	require.True(t, ok)
	assert.Equal(t, "реклама в чате", comment)

	comment, ok = ParseReport("/admin")
	require.True(t, ok)
	assert.Empty(t, comment)

	_, ok = ParseReport("report без префикса")
	assert.False(t, ok)
}

func TestIsRules(t *testing.T) {
	assert.True(t, IsRules("!правила"))
	assert.True(t, IsRules("!rules"))
	assert.False(t, IsRules("правила"))
	assert.False(t, IsRules("!правила чата"))
}

func TestParseArgs(t *testing.T) {
	t.Run("target duration reason", func(t *testing.T) {
		args := ParseArgs("@user 10м спам и реклама", false)
		assert.Equal(t, "@user", args.TargetArg)
		assert.True(t, args.HasDuration)
		assert.Equal(t, 10*time.Minute, args.Duration)
		assert.Equal(t, "спам и реклама", args.Reason)
	})

	t.Run("reply shifts everything left", func(t *testing.T) {
		args := ParseArgs("10м спам", true)
		assert.Empty(t, args.TargetArg)
		assert.True(t, args.HasDuration)
		assert.Equal(t, 10*time.Minute, args.Duration)
		assert.Equal(t, "спам", args.Reason)
	})

	t.Run("no duration means whole tail is reason", func(t *testing.T) {
		args := ParseArgs("@user за грубость", false)
		assert.Equal(t, "@user", args.TargetArg)
		assert.False(t, args.HasDuration)
		assert.Equal(t, "за грубость", args.Reason)
	})

	t.Run("reply with reason only", func(t *testing.T) {
		args := ParseArgs("оффтоп", true)
		assert.False(t, args.HasDuration)
		assert.Equal(t, "оффтоп", args.Reason)
	})

	t.Run("empty", func(t *testing.T) {
		args := ParseArgs("", false)
		assert.Empty(t, args.TargetArg)
		assert.Empty(t, args.Reason)
	})
}
