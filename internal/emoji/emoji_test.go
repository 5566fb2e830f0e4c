package emoji

import "testing"

func TestSetEmojiDisabled(t *testing.T) {
	defer SetEmojiDisabled(false)

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Error("IsEmojiDisabled() = false after disabling")
	}
	if got := GetEmoji("success"); got != "[OK]" {
		t.Errorf("GetEmoji(success) = %q, want fallback [OK]", got)
	}

	SetEmojiDisabled(false)
	if IsEmojiDisabled() {
		t.Error("IsEmojiDisabled() = true after re-enabling")
	}
	if got := GetEmoji("success"); got != "✅" {
		t.Errorf("GetEmoji(success) = %q, want emoji", got)
	}
}

func TestGetEmojiUnknownKey(t *testing.T) {
	if got := GetEmoji("no-such-key"); got != "[?]" {
		t.Errorf("GetEmoji(no-such-key) = %q, want [?]", got)
	}
}
