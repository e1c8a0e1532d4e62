package models

import "testing"

func TestConversation_UserMessageCount(t *testing.T) {
	c := Conversation{
		Messages: []Message{
			{Role: RoleUser, Text: "hey", Seq: 1},
			{Role: RoleAssistant, Text: "hi!", Seq: 2},
			{Role: RoleUser, Text: "make something for Acme", Seq: 3},
		},
	}

	if got := c.UserMessageCount(); got != 2 {
		t.Errorf("UserMessageCount = %d, want 2", got)
	}
}

func TestConversation_LastUserMessage(t *testing.T) {
	c := Conversation{}
	if got := c.LastUserMessage(); got != "" {
		t.Errorf("LastUserMessage on empty log = %q, want empty", got)
	}

	c.Messages = []Message{
		{Role: RoleUser, Text: "first", Seq: 1},
		{Role: RoleAssistant, Text: "reply", Seq: 2},
		{Role: RoleUser, Text: "second", Seq: 3},
		{Role: RoleAssistant, Text: "reply", Seq: 4},
	}
	if got := c.LastUserMessage(); got != "second" {
		t.Errorf("LastUserMessage = %q, want %q", got, "second")
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() {
		t.Error("user and assistant roles should be valid")
	}
	if Role("system").Valid() {
		t.Error("system role is not part of the model")
	}
}
