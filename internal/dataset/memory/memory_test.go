package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"mailmeter/internal/core"
	"mailmeter/internal/dataset"
)

func TestSaveLoadList(t *testing.T) {
	ctx := context.Background()
	s := New()

	records := []core.MailRecord{
		{Sender: "alice", Subject: "hi", Date: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{Sender: "bob", Subject: "yo", Date: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	id, err := s.Save(ctx, "inbox.csv", records)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Sender != "alice" {
		t.Fatalf("loaded records = %+v", got)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 1 || metas[0].Name != "inbox.csv" || metas[0].Records != 2 {
		t.Fatalf("metas = %+v", metas)
	}
}

func TestLoadUnknownID(t *testing.T) {
	_, err := New().Load(context.Background(), "mem-99")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, _ := s.Save(ctx, "x.csv", []core.MailRecord{{Sender: "alice"}})

	first, _ := s.Load(ctx, id)
	first[0].Sender = "mutated"

	second, _ := s.Load(ctx, id)
	if second[0].Sender != "alice" {
		t.Fatal("Load exposed internal slice")
	}
}
