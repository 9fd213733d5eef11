package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/pkg/prompt"
)

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	asked    []prompt.InputConfig
	infos    []string
	err      error
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.asked = append(d.asked, cfg)
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestCollectAsksOnlyMissingKeysInOrder(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"Ann", "42"}}
	known := map[string]string{"ref": "R-1"}

	got, err := prompt.Collect(context.Background(), driver, []string{"name", "ref", "amount"}, known,
		prompt.WithDefaults(map[string]string{"amount": "0"}))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := map[string]string{"name": "Ann", "ref": "R-1", "amount": "42"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	var asked []string
	for _, cfg := range driver.asked {
		asked = append(asked, cfg.Message+"="+cfg.Default)
	}
	if diff := cmp.Diff([]string{"name=", "amount=0"}, asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if len(known) != 1 {
		t.Fatalf("known map was modified: %v", known)
	}
}

func TestCollectPromptAllOffersKnownValues(t *testing.T) {
	driver := &scriptedDriver{}
	got, err := prompt.Collect(context.Background(), driver, []string{"name"}, map[string]string{"name": "Bo"}, prompt.WithPromptAll())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got["name"] != "Bo" || len(driver.asked) != 1 || driver.asked[0].Default != "Bo" {
		t.Fatalf("unexpected result %v asked %+v", got, driver.asked)
	}
}

func TestCollectPropagatesAbort(t *testing.T) {
	driver := &scriptedDriver{err: prompt.ErrAborted}
	if _, err := prompt.Collect(context.Background(), driver, []string{"name"}, nil); !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCollectBatch(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"Ann", "Bo"},
		confirms: []bool{true, false},
	}
	sets, err := prompt.CollectBatch(context.Background(), driver, []string{"name"})
	if err != nil {
		t.Fatalf("CollectBatch: %v", err)
	}
	want := []map[string]string{{"name": "Ann"}, {"name": "Bo"}}
	if diff := cmp.Diff(want, sets); diff != "" {
		t.Fatalf("sets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"value set 2"}, driver.infos); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestChooseFormat(t *testing.T) {
	formats := []string{"email", "html", "inline-html", "pdf"}

	got, err := prompt.ChooseFormat(context.Background(), &scriptedDriver{}, formats, "pdf")
	if err != nil || got != "pdf" {
		t.Fatalf("default selection: got %q err %v", got, err)
	}

	got, err = prompt.ChooseFormat(context.Background(), &scriptedDriver{selects: []int{1}}, formats, "")
	if err != nil || got != "html" {
		t.Fatalf("explicit selection: got %q err %v", got, err)
	}

	if _, err := prompt.ChooseFormat(context.Background(), &scriptedDriver{selects: []int{9}}, formats, ""); err == nil {
		t.Fatalf("expected error for out of range selection")
	}
	if _, err := prompt.ChooseFormat(context.Background(), &scriptedDriver{}, nil, ""); err == nil {
		t.Fatalf("expected error without formats")
	}
}
