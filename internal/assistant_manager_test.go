package internal

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAssistantManager_CreateAndRetrieve(t *testing.T) {
	ctx := context.Background()
	client := NewFakeClient()
	m := NewAssistantManager(client, "")

	tool, err := ParseTool("code execution")
	if err != nil {
		t.Fatalf("ParseTool() error = %v", err)
	}
	created, err := m.Create(ctx, "X", "Y", []Tool{tool})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create() returned an empty ID")
	}
	if created.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", created.Model, DefaultModel)
	}

	got, err := m.Retrieve(ctx, created.ID)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.Name != "X" || got.Instructions != "Y" {
		t.Errorf("Retrieve() = %q/%q, want X/Y", got.Name, got.Instructions)
	}
	if len(got.Tools) != 1 || got.Tools[0] != ToolCodeInterpreter {
		t.Errorf("Tools = %v, want [code_interpreter]", got.Tools)
	}
}

func TestAssistantManager_Model(t *testing.T) {
	if got := NewAssistantManager(NewFakeClient(), "gpt-4o").Model(); got != "gpt-4o" {
		t.Errorf("Model() = %q, want gpt-4o", got)
	}
	if got := NewAssistantManager(NewFakeClient(), "").Model(); got != DefaultModel {
		t.Errorf("Model() = %q, want %q", got, DefaultModel)
	}
}

func TestAssistantManager_InvalidInput(t *testing.T) {
	ctx := context.Background()
	client := NewFakeClient()
	m := NewAssistantManager(client, "")

	tests := []struct {
		name string
		call func() error
	}{
		{"create without name", func() error { _, err := m.Create(ctx, "", "x", nil); return err }},
		{"retrieve empty id", func() error { _, err := m.Retrieve(ctx, ""); return err }},
		{"retrieve by empty name", func() error { _, err := m.RetrieveByName(ctx, ""); return err }},
		{"delete empty id", func() error { return m.Delete(ctx, "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var ae *AssistantError
			if !errors.As(err, &ae) {
				t.Fatalf("error = %v, want *AssistantError", err)
			}
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("error = %v, want ErrInvalidValue", err)
			}
		})
	}
	if n := client.CallCount("GetAssistant") + client.CallCount("CreateAssistant"); n != 0 {
		t.Errorf("remote calls = %d, want 0 for invalid input", n)
	}
}

func TestAssistantManager_RetrieveUnknown(t *testing.T) {
	m := NewAssistantManager(NewFakeClient(), "")
	_, err := m.Retrieve(context.Background(), "asst_missing")
	var ae *AssistantError
	if !errors.As(err, &ae) {
		t.Fatalf("Retrieve() error = %v, want *AssistantError", err)
	}
}

func TestAssistantManager_List(t *testing.T) {
	ctx := context.Background()
	client := NewFakeClient()
	m := NewAssistantManager(client, "")

	for i := 0; i < 12; i++ {
		if _, err := m.Create(ctx, fmt.Sprintf("a%d", i), "", nil); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := m.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != DefaultListLimit {
		t.Errorf("List() returned %d, want %d", len(got), DefaultListLimit)
	}
	if got[0].Name != "a11" {
		t.Errorf("List()[0] = %q, want newest a11", got[0].Name)
	}

	asc, err := m.List(ctx, ListOptions{Limit: 3, Order: OrderAsc})
	if err != nil {
		t.Fatalf("List(asc) error = %v", err)
	}
	if len(asc) != 3 || asc[0].Name != "a0" {
		t.Errorf("List(asc) = %v, want three starting at a0", asc)
	}
}

func TestAssistantManager_ListAuthError(t *testing.T) {
	client := NewFakeClient()
	client.Errors["ListAssistants"] = &FakeStatusError{Code: 401, Message: "Incorrect API key provided"}
	m := NewAssistantManager(client, "")

	_, err := m.List(context.Background(), ListOptions{})
	var ae *AssistantError
	if !errors.As(err, &ae) {
		t.Fatalf("List() error = %v, want *AssistantError", err)
	}
	if Classify(err) != ConditionAuthentication {
		t.Errorf("Classify() = %v, want authentication", Classify(err))
	}
}

func TestAssistantManager_RetrieveByName(t *testing.T) {
	ctx := context.Background()
	client := NewFakeClient()
	m := NewAssistantManager(client, "")

	target, err := m.Create(ctx, "Numerical Validation Assistant", "", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// Push the target past the first page
	for i := 0; i < 150; i++ {
		if _, err := m.Create(ctx, fmt.Sprintf("filler-%d", i), "", nil); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := m.RetrieveByName(ctx, "Numerical Validation Assistant")
	if err != nil {
		t.Fatalf("RetrieveByName() error = %v", err)
	}
	if got.ID != target.ID {
		t.Errorf("RetrieveByName() ID = %q, want %q", got.ID, target.ID)
	}
	if n := client.CallCount("ListAssistants"); n != 2 {
		t.Errorf("ListAssistants calls = %d, want 2 pages", n)
	}
}

func TestAssistantManager_RetrieveByNameNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewAssistantManager(NewFakeClient(), "")
	if _, err := m.Create(ctx, "other", "", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := m.RetrieveByName(ctx, "missing")
	var ae *AssistantError
	if !errors.As(err, &ae) || !errors.Is(err, ErrNotFound) {
		t.Errorf("RetrieveByName() error = %v, want AssistantError wrapping ErrNotFound", err)
	}
}

func TestAssistantManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewAssistantManager(NewFakeClient(), "")
	a, err := m.Create(ctx, "temp", "", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := m.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Retrieve(ctx, a.ID); err == nil {
		t.Error("Retrieve() after Delete() succeeded, want error")
	}
}
